package server

import (
	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.posts.Create(c.Context(), service.CreatePostInput{
		UserID: currentUserID(c),
		Text:   req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/post
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.posts.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/post/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	post, err := s.posts.Get(c.Context(), postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/post/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := s.posts.Delete(c.Context(), currentUserID(c), postID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post removed"})
}

// LikePost handles PUT /api/post/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	post, err := s.posts.Like(c.Context(), currentUserID(c), postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post.Likes)
}

// UnlikePost handles PUT /api/post/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	post, err := s.posts.Unlike(c.Context(), currentUserID(c), postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post.Likes)
}
