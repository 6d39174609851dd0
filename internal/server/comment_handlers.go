package server

import (
	"lumagram/internal/models"
	"lumagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	cursor, err := s.parseCursor(c)
	if err != nil {
		return nil
	}

	page, err := s.commentService.ListComments(c.Context(), postID, viewerID, cursor)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID: userID,
		PostID: postID,
		Text:   req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PATCH /api/posts/:id/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Text:      req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), userID, commentID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
