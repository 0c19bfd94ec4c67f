package repository

import (
	"context"
	"testing"
	"time"

	"devconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCreatesThenUpdates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")
	repo := NewProfileRepository(db)

	created, err := repo.Upsert(ctx, &models.Profile{
		UserID:  user.ID,
		Status:  "dev",
		Skills:  []string{"go"},
		Company: "Acme",
		Social:  models.Social{Twitter: "https://twitter.com/alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, "dev", created.Status)
	assert.Equal(t, "Alice", created.User.Name)
	assert.Equal(t, "https://twitter.com/alice", created.Social.Twitter)

	updated, err := repo.Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "lead",
		Skills: []string{"rust", "go"},
		Social: models.Social{Linkedin: "https://linkedin.com/in/alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "upsert must not create a second profile")
	assert.Equal(t, "lead", updated.Status)
	assert.Equal(t, []string{"rust", "go"}, updated.Skills)
	assert.Equal(t, "", updated.Company, "scalar fields are overwritten, not merged")
	assert.Equal(t, "https://linkedin.com/in/alice", updated.Social.Linkedin)
	assert.Equal(t, "", updated.Social.Twitter, "social links are replaced wholesale")

	// Re-read through a fresh query to confirm the serialized columns
	// round-trip from storage, not from the in-memory argument.
	reloaded, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "go"}, reloaded.Skills)
	assert.Equal(t, "https://linkedin.com/in/alice", reloaded.Social.Linkedin)

	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddExperienceWithoutProfile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")
	repo := NewProfileRepository(db)

	_, err := repo.AddExperience(ctx, user.ID, &models.Experience{
		Title:   "Eng",
		Company: "Acme",
		From:    time.Now(),
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestRemoveExperienceAbsentIsNoop(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")
	repo := NewProfileRepository(db)

	_, err := repo.Upsert(ctx, &models.Profile{UserID: user.ID, Status: "dev", Skills: []string{"go"}})
	require.NoError(t, err)

	profile, err := repo.RemoveExperience(ctx, user.ID, 9999)
	require.NoError(t, err)
	assert.Empty(t, profile.Experience)
}

func TestDeleteByUserIDRemovesProfileChildren(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")
	repo := NewProfileRepository(db)

	_, err := repo.Upsert(ctx, &models.Profile{UserID: user.ID, Status: "dev", Skills: []string{"go"}})
	require.NoError(t, err)

	_, err = repo.AddExperience(ctx, user.ID, &models.Experience{Title: "Eng", Company: "Acme", From: time.Now()})
	require.NoError(t, err)
	_, err = repo.AddEducation(ctx, user.ID, &models.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByUserID(ctx, user.ID))

	var exp, edu int64
	db.Model(&models.Experience{}).Count(&exp)
	db.Model(&models.Education{}).Count(&edu)
	assert.Zero(t, exp)
	assert.Zero(t, edu)

	// Idempotent
	require.NoError(t, repo.DeleteByUserID(ctx, user.ID))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := NewUserRepository(db)
	require.NoError(t, repo.Create(ctx, &models.User{Name: "A", Email: "a@x.com", Password: "h"}))

	err := repo.Create(ctx, &models.User{Name: "B", Email: "a@x.com", Password: "h"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_EMAIL", appErr.Code)
}
