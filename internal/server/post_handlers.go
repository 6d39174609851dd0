package server

import (
	"encoding/json"
	"strings"

	"lumagram/internal/models"
	"lumagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. The request is multipart: a mandatory
// "picture" file plus an optional "description" field. The picture is
// immutable once the post exists.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("picture")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Picture is required"))
	}

	if ct := file.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Picture must be an image"))
	}

	ref, err := s.media.Save(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      userID,
		Picture:     ref,
		Description: c.FormValue("description"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetUserPosts handles GET /api/posts?username=<name>, newest first.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("you must provide the 'username' parameter"))
	}

	viewerID, _ := s.optionalUserID(c)
	cursor, err := s.parseCursor(c)
	if err != nil {
		return nil
	}

	page, err := s.postService.ListUserPosts(c.Context(), username, viewerID, cursor)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// GetFeed handles GET /api/posts/feed: posts of the users the caller follows
// with accepted status, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	cursor, err := s.parseCursor(c)
	if err != nil {
		return nil
	}

	page, err := s.postService.Feed(c.Context(), userID, cursor)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.Context(), postID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PATCH /api/posts/:id. Only the description may change;
// any other field in the body is rejected.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	for key := range raw {
		if key != "description" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Only 'description' can be updated"))
		}
	}

	in := service.UpdatePostInput{UserID: userID, PostID: postID}
	if body, ok := raw["description"]; ok {
		var description string
		if err := json.Unmarshal(body, &description); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid description"))
		}
		in.Description = &description
	}

	post, err := s.postService.UpdatePost(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
