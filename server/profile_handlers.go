package server

import (
	"strings"
	"time"

	"devconnect/cache"
	"devconnect/models"
	"devconnect/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// profilesCacheKey caches the public profile directory.
const profilesCacheKey = "profiles:all"

// profileRequest is the body for creating or updating a profile. Skills is
// accepted either as a comma-separated string or as a JSON array.
type profileRequest struct {
	Status         string `json:"status"`
	Skills         any    `json:"skills"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"github_username"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// parseSkills normalizes the skills field into a trimmed string list.
func parseSkills(v any) []string {
	var raw []string
	switch skills := v.(type) {
	case string:
		raw = strings.Split(skills, ",")
	case []any:
		for _, s := range skills {
			if str, ok := s.(string); ok {
				raw = append(raw, str)
			}
		}
	}

	var out []string
	for _, s := range raw {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseDate accepts "2006-01-02" or RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// respondProfileError writes the error; profile lookups report a missing
// profile as 400 rather than 404.
func respondProfileError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return respondError(c, err)
}

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return respondProfileError(c, err)
	}

	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	skills := parseSkills(req.Skills)

	var msgs []string
	if req.Status == "" {
		msgs = append(msgs, "Status is required")
	}
	if len(skills) == 0 {
		msgs = append(msgs, "Skills is required")
	}
	if len(msgs) > 0 {
		return respondError(c, models.NewValidationError(msgs...))
	}

	profile := &models.Profile{
		UserID:         userID,
		Status:         req.Status,
		Skills:         skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	}

	updated, err := s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return respondError(c, err)
	}

	cache.Invalidate(ctx, profilesCacheKey)
	return c.JSON(updated)
}

// ListProfiles handles GET /api/profile
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var profiles []models.Profile
	err := cache.CacheAside(ctx, profilesCacheKey, &profiles, time.Minute, func() error {
		var ferr error
		profiles, ferr = s.profileRepo.List(ctx)
		return ferr
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profiles)
}

// GetProfileByUser handles GET /api/profile/user/:user_id
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := c.ParamsInt("user_id")
	if err != nil || userID < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("There is no profile for this user"))
	}

	profile, err := s.profileRepo.GetByUserID(ctx, uint(userID))
	if err != nil {
		return respondProfileError(c, err)
	}

	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile. Removes the user's posts,
// profile and account in one transaction so a mid-cascade failure leaves
// nothing half-deleted.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewPostRepository(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		if err := repository.NewProfileRepository(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		return repository.NewUserRepository(tx).Delete(ctx, userID)
	})
	if err != nil {
		return respondError(c, err)
	}

	cache.Invalidate(ctx, profilesCacheKey)
	return c.JSON(fiber.Map{"msg": "User removed"})
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		From        string `json:"from"`
		To          string `json:"to"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	var msgs []string
	if req.Title == "" {
		msgs = append(msgs, "Title is required")
	}
	if req.Company == "" {
		msgs = append(msgs, "Company is required")
	}
	from, err := parseDate(req.From)
	if req.From == "" || err != nil {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		return respondError(c, models.NewValidationError(msgs...))
	}

	entry := &models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		Current:     req.Current,
		Description: req.Description,
	}
	if req.To != "" {
		to, terr := parseDate(req.To)
		if terr != nil {
			return respondError(c, models.NewValidationError("To date is invalid"))
		}
		entry.To = &to
	}

	profile, err := s.profileRepo.AddExperience(ctx, userID, entry)
	if err != nil {
		return respondProfileError(c, err)
	}

	cache.Invalidate(ctx, profilesCacheKey)
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	expID, err := c.ParamsInt("exp_id")
	if err != nil || expID < 1 {
		return respondError(c, models.NewValidationError("Invalid experience ID"))
	}

	profile, err := s.profileRepo.RemoveExperience(ctx, userID, uint(expID))
	if err != nil {
		return respondProfileError(c, err)
	}

	cache.Invalidate(ctx, profilesCacheKey)
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		School       string `json:"school"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"fieldofstudy"`
		From         string `json:"from"`
		To           string `json:"to"`
		Current      bool   `json:"current"`
		Description  string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	var msgs []string
	if req.School == "" {
		msgs = append(msgs, "School is required")
	}
	if req.Degree == "" {
		msgs = append(msgs, "Degree is required")
	}
	if req.FieldOfStudy == "" {
		msgs = append(msgs, "Field of study is required")
	}
	from, err := parseDate(req.From)
	if req.From == "" || err != nil {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		return respondError(c, models.NewValidationError(msgs...))
	}

	entry := &models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		Current:      req.Current,
		Description:  req.Description,
	}
	if req.To != "" {
		to, terr := parseDate(req.To)
		if terr != nil {
			return respondError(c, models.NewValidationError("To date is invalid"))
		}
		entry.To = &to
	}

	profile, err := s.profileRepo.AddEducation(ctx, userID, entry)
	if err != nil {
		return respondProfileError(c, err)
	}

	cache.Invalidate(ctx, profilesCacheKey)
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	eduID, err := c.ParamsInt("edu_id")
	if err != nil || eduID < 1 {
		return respondError(c, models.NewValidationError("Invalid education ID"))
	}

	profile, err := s.profileRepo.RemoveEducation(ctx, userID, uint(eduID))
	if err != nil {
		return respondProfileError(c, err)
	}

	cache.Invalidate(ctx, profilesCacheKey)
	return c.JSON(profile)
}
