package server

import (
	"lumagram/internal/models"
	"lumagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetMe(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	profile, err := s.userService.GetProfile(c.Context(), user.Username, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UpdateMyProfile handles PATCH /api/users/me. Absent fields stay unchanged;
// closing an open profile drops all pending inbound follow requests.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		Description *string `json:"description"`
		IsOpened    *bool   `json:"is_opened"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Description: req.Description,
		IsOpened:    req.IsOpened,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	profile, err := s.userService.GetProfile(c.Context(), user.Username, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// SearchUsers handles GET /api/users?search=<prefix>
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	users, err := s.userService.Search(c.Context(), c.Query("search"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	profile, err := s.userService.GetProfile(c.Context(), c.Params("username"), viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// GetFollowers handles GET /api/users/:username/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	cursor, err := s.parseCursor(c)
	if err != nil {
		return nil
	}

	page, err := s.userService.ListFollowers(c.Context(), c.Params("username"), viewerID, cursor)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// GetFollows handles GET /api/users/:username/follows
func (s *Server) GetFollows(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	cursor, err := s.parseCursor(c)
	if err != nil {
		return nil
	}

	page, err := s.userService.ListFollows(c.Context(), c.Params("username"), viewerID, cursor)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// GetPendingFollowers handles GET /api/users/me/pending-followers. Only the
// owner sees their inbound pending requests.
func (s *Server) GetPendingFollowers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	cursor, err := s.parseCursor(c)
	if err != nil {
		return nil
	}

	page, err := s.userService.ListPendingFollowers(c.Context(), userID, cursor)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}
