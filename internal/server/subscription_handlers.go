package server

import (
	"github.com/gofiber/fiber/v2"
)

// Subscribe handles PUT /api/users/:username/subscribe. Subscribing to an
// open profile takes effect immediately; a closed profile receives a pending
// request instead. Repeating the request is a no-op, except that a rejected
// edge is revived back to pending.
func (s *Server) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.subscriptionService.Subscribe(c.Context(), userID, c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// Unsubscribe handles DELETE /api/users/:username/subscribe. Removing an
// absent edge succeeds silently.
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.subscriptionService.Unsubscribe(c.Context(), userID, c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// AcceptFollower handles PUT /api/users/:username/accept, approving the named
// user's follow request toward the caller.
func (s *Server) AcceptFollower(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.subscriptionService.Accept(c.Context(), userID, c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Request accepted"})
}

// RejectFollower handles DELETE /api/users/:username/accept, refusing (or
// revoking) the named user's follow toward the caller. Idempotent.
func (s *Server) RejectFollower(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.subscriptionService.Reject(c.Context(), userID, c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Request rejected"})
}
