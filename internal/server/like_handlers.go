package server

import (
	"github.com/gofiber/fiber/v2"
)

// LikePost handles PUT /api/posts/:id/like. Liking an already-liked post is
// a no-op; both cases return the post's current like count.
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	nlikes, err := s.postService.LikePost(c.Context(), userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"nlikes": nlikes})
}

// UnlikePost handles DELETE /api/posts/:id/like, returning the refreshed
// like count. Removing an absent like succeeds silently.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	nlikes, err := s.postService.UnlikePost(c.Context(), userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"nlikes": nlikes})
}

// GetLikers handles GET /api/posts/:id/likes: the users who liked the post,
// in insertion-stable ID order.
func (s *Server) GetLikers(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	cursor, err := s.parseCursor(c)
	if err != nil {
		return nil
	}

	page, err := s.postService.ListLikers(c.Context(), postID, viewerID, cursor)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}
