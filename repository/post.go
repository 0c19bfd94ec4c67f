package repository

import (
	"context"
	"errors"

	"devconnect/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations, including
// the like and comment sub-lists.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id, requesterID uint) error
	Like(ctx context.Context, postID, userID uint) ([]models.Like, error)
	Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error)
	AddComment(ctx context.Context, comment *models.Comment) ([]models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID, requesterID uint) ([]models.Comment, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withChildren preloads likes and comments in newest-first order.
func (r *postRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.GetByID(ctx, post.ID)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withChildren(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.withChildren(ctx).Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Delete removes a post. Only the author may delete it.
func (r *postRepository) Delete(ctx context.Context, id, requesterID uint) error {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.UserID != requesterID {
		return models.NewForbiddenError("User not authorized")
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Like records userID's like on the post. The insert is conditional on the
// unique (post_id, user_id) index, so a concurrent double-like cannot slip
// through: whichever insert loses the race reports ALREADY_LIKED.
func (r *postRepository) Like(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := r.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	like := models.Like{PostID: postID, UserID: userID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewAlreadyLikedError()
	}

	return r.listLikes(ctx, postID)
}

// Unlike removes userID's like. NOT_LIKED when no like row existed.
func (r *postRepository) Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := r.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotLikedError()
	}

	return r.listLikes(ctx, postID)
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) ([]models.Comment, error) {
	if _, err := r.GetByID(ctx, comment.PostID); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.listComments(ctx, comment.PostID)
}

// RemoveComment deletes a comment. Only the comment's author may remove it.
func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID, requesterID uint) ([]models.Comment, error) {
	if _, err := r.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND id = ?", postID, commentID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Comment")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if comment.UserID != requesterID {
		return nil, models.NewForbiddenError("User not authorized")
	}

	if err := r.db.WithContext(ctx).Delete(&comment).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.listComments(ctx, postID)
}

// DeleteByUserID removes all of the user's posts together with their likes
// and comments. Used by account deletion.
func (r *postRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(ids) == 0 {
		return nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN ?", ids).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) listLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&likes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *postRepository) listComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
