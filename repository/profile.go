package repository

import (
	"context"
	"errors"

	"devconnect/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations,
// including the experience and education sub-lists.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	AddExperience(ctx context.Context, userID uint, entry *models.Experience) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uint, entry *models.Education) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withChildren preloads the owning user and the sub-lists in
// newest-first order, matching the insert-at-front semantics.
func (r *profileRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.withChildren(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile")
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.withChildren(ctx).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// Upsert replaces the scalar, skills and social fields of the user's
// profile with the supplied values, creating the profile when absent.
// Sub-lists are untouched. The unique index on user_id guarantees at most
// one profile per user even under concurrent upserts.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	var existing models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if cerr := r.db.WithContext(ctx).Create(profile).Error; cerr != nil {
			return nil, models.NewInternalError(cerr)
		}
	case err != nil:
		return nil, models.NewInternalError(err)
	default:
		// Struct updates with an explicit Select overwrite zero values and
		// run the JSON serializers; a column map would bypass them.
		uerr := r.db.WithContext(ctx).Model(&existing).
			Select("status", "skills", "company", "website", "location", "bio", "github_username", "social").
			Updates(profile).Error
		if uerr != nil {
			return nil, models.NewInternalError(uerr)
		}
	}

	return r.GetByUserID(ctx, profile.UserID)
}

func (r *profileRepository) AddExperience(ctx context.Context, userID uint, entry *models.Experience) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.GetByUserID(ctx, userID)
}

// RemoveExperience deletes the entry with the given ID from the user's
// profile. Removing an absent entry is a no-op, not an error.
func (r *profileRepository) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profile.ID, expID).
		Delete(&models.Experience{}).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID uint, entry *models.Education) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profile.ID, eduID).
		Delete(&models.Education{}).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.GetByUserID(ctx, userID)
}

// DeleteByUserID removes the user's profile together with its experience
// and education entries. Idempotent.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
