package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app, db := newTestServer(t)
	createUser(t, db, "taken", true)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "newuser",
				"email":    "newuser@example.com",
				"password": testPassword,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"username": "someoneelse",
				"email":    "taken@example.com",
				"password": testPassword,
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Duplicate username",
			body: map[string]string{
				"username": "taken",
				"email":    "fresh@example.com",
				"password": testPassword,
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"username": "nopassword",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid email",
			body: map[string]string{
				"username": "bademail",
				"email":    "not-an-email",
				"password": testPassword,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak password",
			body: map[string]string{
				"username": "weakpass",
				"email":    "weakpass@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/signup", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var body struct {
					Token string `json:"token"`
					User  struct {
						Username string `json:"username"`
						IsOpened bool   `json:"is_opened"`
					} `json:"user"`
				}
				decodeBody(t, resp, &body)
				assert.NotEmpty(t, body.Token)
				assert.Equal(t, "newuser", body.User.Username)
				assert.True(t, body.User.IsOpened, "new accounts start open")
			} else {
				_ = resp.Body.Close()
			}
		})
	}
}

func TestLogin(t *testing.T) {
	_, app, db := newTestServer(t)
	createUser(t, db, "alice", true)

	t.Run("success", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": testPassword,
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "Wrong12345",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "ghost@example.com",
			"password": testPassword,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestLogout(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice", true)

	req := jsonRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", bearer(t, srv, alice))

	// Without Redis there is no blacklist to write, but logout still succeeds.
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired(t *testing.T) {
	srv, app, db := newTestServer(t)
	alice := createUser(t, db, "alice", true)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/users/me", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("garbage token", func(t *testing.T) {
		req := jsonRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("valid token", func(t *testing.T) {
		req := jsonRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", bearer(t, srv, alice))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
