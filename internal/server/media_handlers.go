package server

import (
	"strings"

	"lumagram/internal/models"
	"lumagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ServeMedia handles GET /media/:ref, serving an uploaded picture or avatar
// by its opaque reference.
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	path, err := s.media.Path(c.Params("ref"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Media", c.Params("ref")))
	}

	return c.SendFile(path)
}

// UploadAvatar handles PUT /api/users/me/avatar with a multipart "avatar"
// file. The previous avatar reference is overwritten; the stored file itself
// remains addressable until cleaned up out of band.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Avatar file is required"))
	}

	if ct := file.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Avatar must be an image"))
	}

	ref, err := s.media.Save(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Avatar: &ref,
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
