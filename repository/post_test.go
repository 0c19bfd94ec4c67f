package repository

import (
	"context"
	"testing"

	"devconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeIsConditionalOnUniqueIndex(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "Alice", "alice@example.com")
	liker := createTestUser(t, db, "Bob", "bob@example.com")

	repo := NewPostRepository(db)
	post, err := repo.Create(ctx, &models.Post{UserID: author.ID, Name: author.Name, Text: "hello"})
	require.NoError(t, err)

	likes, err := repo.Like(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)

	// The second insert hits the conflict clause, not a duplicate row
	_, err = repo.Like(ctx, post.ID, liker.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_LIKED", appErr.Code)

	var count int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUnlikeWithoutLike(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "Alice", "alice@example.com")
	repo := NewPostRepository(db)
	post, err := repo.Create(ctx, &models.Post{UserID: author.ID, Name: author.Name, Text: "hello"})
	require.NoError(t, err)

	_, err = repo.Unlike(ctx, post.ID, author.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_LIKED", appErr.Code)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "Alice", "alice@example.com")
	other := createTestUser(t, db, "Bob", "bob@example.com")

	repo := NewPostRepository(db)
	post, err := repo.Create(ctx, &models.Post{UserID: author.ID, Name: author.Name, Text: "hello"})
	require.NoError(t, err)

	err = repo.Delete(ctx, post.ID, other.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// Still present
	_, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, post.ID, author.ID))
	_, err = repo.GetByID(ctx, post.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestDeleteByUserIDRemovesChildren(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "Alice", "alice@example.com")
	liker := createTestUser(t, db, "Bob", "bob@example.com")

	repo := NewPostRepository(db)
	post, err := repo.Create(ctx, &models.Post{UserID: author.ID, Name: author.Name, Text: "hello"})
	require.NoError(t, err)

	_, err = repo.Like(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	_, err = repo.AddComment(ctx, &models.Comment{PostID: post.ID, UserID: liker.ID, Name: liker.Name, Text: "hi"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByUserID(ctx, author.ID))

	var likes, comments int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
	db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	assert.Zero(t, likes)
	assert.Zero(t, comments)

	// Idempotent for a user with no posts
	require.NoError(t, repo.DeleteByUserID(ctx, author.ID))
}
