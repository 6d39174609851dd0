package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:                "test",
		Port:               "8080",
		JWTSecret:          "secure-secret-at-least-32-chars-long",
		DBPassword:         "secure-password",
		DBSSLMode:          "disable",
		RedisURL:           "redis://localhost:6379",
		PostsPerPage:       10,
		UsersPerPage:       20,
		CommentsPerPage:    20,
		LikesPerPage:       20,
		NumPreviewComments: 4,
		SearchSuggestions:  10,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidatePageSizes(t *testing.T) {
	c := validConfig()
	c.PostsPerPage = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.SearchSuggestions = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.NumPreviewComments = -1
	assert.Error(t, c.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, 10, c.PostsPerPage)
	assert.Equal(t, 4, c.NumPreviewComments)
	assert.Equal(t, 10, c.SearchSuggestions)
}

func TestLoadConfig_SSLModeNormalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
}
