package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"lumagram/internal/cache"
	"lumagram/internal/config"
	"lumagram/internal/database"
	"lumagram/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server over an in-memory sqlite database and a
// Fiber app with the full route table. Redis is absent, so caching and token
// revocation degrade to no-ops.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cache.SetClient(nil)

	cfg := &config.Config{
		JWTSecret:          "test-secret-test-secret-test-secret",
		Env:                "test",
		MediaDir:           t.TempDir(),
		PostsPerPage:       10,
		UsersPerPage:       20,
		CommentsPerPage:    20,
		LikesPerPage:       20,
		NumPreviewComments: 4,
		SearchSuggestions:  10,
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	srv.SetupRoutes(app)

	return srv, app, db
}

// testPassword satisfies the signup password policy.
const testPassword = "Password123"

func createUser(t *testing.T, db *gorm.DB, username string, open bool) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		IsOpened: open,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createEdge(t *testing.T, db *gorm.DB, followerID, followsToID uint, status models.SubscriptionStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.Subscription{
		FollowerID:  followerID,
		FollowsToID: followsToID,
		Status:      status,
	}).Error)
}

func createPost(t *testing.T, db *gorm.DB, userID uint, description string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Picture: "pic.jpg", Description: description}
	require.NoError(t, db.Create(post).Error)
	return post
}

func bearer(t *testing.T, srv *Server, user *models.User) string {
	t.Helper()
	token, err := srv.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonRequest(method, target string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// multipartUpload builds a multipart body with one file field plus optional
// plain fields, mimicking a browser form submit.
func multipartUpload(t *testing.T, fileField, filename string, content []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}
