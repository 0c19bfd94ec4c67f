package server

import (
	"fmt"
	"time"

	"devconnect/cache"
	"devconnect/github"
	"devconnect/models"

	"github.com/gofiber/fiber/v2"
)

// GetGithubRepos handles GET /api/profile/github/:username. Upstream
// failures produce an explicit error response instead of hanging the
// client.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	ctx := c.UserContext()

	username := c.Params("username")
	if username == "" {
		return respondError(c, models.NewValidationError("Username is required"))
	}

	key := fmt.Sprintf("github:repos:%s", username)
	var repos []github.Repo
	err := cache.CacheAside(ctx, key, &repos, 5*time.Minute, func() error {
		var ferr error
		repos, ferr = s.github.ListRepos(ctx, username)
		return ferr
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(repos)
}
