package server

import (
	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles PUT /api/post/comment/:id
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.comments.Create(c.Context(), service.CreateCommentInput{
		UserID: currentUserID(c),
		PostID: postID,
		Text:   req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post.Comments)
}

// DeleteComment handles DELETE /api/post/comment/:id/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return fail(c, err)
	}

	post, err := s.comments.Delete(c.Context(), currentUserID(c), postID, commentID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post.Comments)
}
