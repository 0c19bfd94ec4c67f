package server

import (
	"devconnect/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Text == "" {
		return respondError(c, models.NewValidationError("Text is required"))
	}

	// Snapshot the author's name and avatar onto the post
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	post := &models.Post{
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		Text:   req.Text,
	}

	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(created)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:post_id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := c.ParamsInt("post_id")
	if err != nil || postID < 1 {
		return respondError(c, models.NewNotFoundError("Post"))
	}

	post, err := s.postRepo.GetByID(ctx, uint(postID))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:post_id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := c.ParamsInt("post_id")
	if err != nil || postID < 1 {
		return respondError(c, models.NewNotFoundError("Post"))
	}

	if err := s.postRepo.Delete(ctx, uint(postID), userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return respondError(c, models.NewNotFoundError("Post"))
	}

	likes, err := s.postRepo.Like(ctx, uint(postID), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return respondError(c, models.NewNotFoundError("Post"))
	}

	likes, err := s.postRepo.Unlike(ctx, uint(postID), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(likes)
}

// CreateComment handles POST /api/posts/comment/:id
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return respondError(c, models.NewNotFoundError("Post"))
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Text == "" {
		return respondError(c, models.NewValidationError("Text is required"))
	}

	// Snapshot the commenter's name and avatar
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	comment := &models.Comment{
		PostID: uint(postID),
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		Text:   req.Text,
	}

	comments, err := s.postRepo.AddComment(ctx, comment)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return respondError(c, models.NewNotFoundError("Post"))
	}
	commentID, err := c.ParamsInt("comment_id")
	if err != nil || commentID < 1 {
		return respondError(c, models.NewNotFoundError("Comment"))
	}

	comments, err := s.postRepo.RemoveComment(ctx, uint(postID), uint(commentID), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comments)
}
