package server

import (
	"net/mail"

	"devconnect/auth"
	"devconnect/gravatar"
	"devconnect/models"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	var msgs []string
	if req.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		msgs = append(msgs, "Please include a valid email")
	}
	if len(req.Password) < 6 {
		msgs = append(msgs, "Please enter a password with 6 or more characters")
	}
	if len(msgs) > 0 {
		return respondError(c, models.NewValidationError(msgs...))
	}

	// Check if user already exists. The unique index on email closes the
	// race between concurrent registrations.
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	if existing != nil {
		return respondError(c, models.NewDuplicateEmailError())
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Avatar:   gravatar.URL(req.Email, 200),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return respondError(c, err)
	}

	token, err := auth.IssueToken(user.ID, s.config.JWTSecret, auth.TokenTTL)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// Login handles POST /api/auth
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	var msgs []string
	if _, err := mail.ParseAddress(req.Email); err != nil {
		msgs = append(msgs, "Please include a valid email")
	}
	if req.Password == "" {
		msgs = append(msgs, "Password is required")
	}
	if len(msgs) > 0 {
		return respondError(c, models.NewValidationError(msgs...))
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil || !auth.CheckPassword(req.Password, user.Password) {
		return respondError(c, models.NewValidationError("Invalid Credentials"))
	}

	token, err := auth.IssueToken(user.ID, s.config.JWTSecret, auth.TokenTTL)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// GetCurrentUser handles GET /api/auth
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}
