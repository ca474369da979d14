package server

import (
	"strings"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Text) == "" {
		return respondError(c, models.NewValidationError("Text is required"))
	}

	// Snapshot the author's current name and avatar; these stay frozen on
	// the post even if the user record changes later.
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	post := &models.Post{
		UserID:       user.ID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Text:         req.Text,
	}

	created, err := s.postRepo.Create(c.Context(), post)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.postRepo.Delete(c.Context(), postID, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Post deleted successfully"})
}

// LikePost handles PUT /api/posts/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	likes, err := s.postRepo.Like(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	likes, err := s.postRepo.Unlike(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/posts/comment/:id
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Text) == "" {
		return respondError(c, models.NewValidationError("Text is required"))
	}

	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	comment := &models.Comment{
		PostID:       postID,
		UserID:       user.ID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Text:         req.Text,
	}

	comments, err := s.postRepo.AddComment(c.Context(), comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// RemoveComment handles DELETE /api/posts/comment/:id/:commentId
func (s *Server) RemoveComment(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := s.postRepo.RemoveComment(c.Context(), postID, commentID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}
