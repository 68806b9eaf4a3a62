package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	required := map[string]string{
		"HOST_IP":      "127.0.0.1",
		"REST_PORT":    "8080",
		"DB_HOST":      "localhost",
		"DB_PORT":      "27017",
		"DB_USER":      "root",
		"DB_PASS":      "secret",
		"DB_NAME":      "vinom",
		"REDIS_ADDR":   "localhost:6379",
		"JWT_SECRET":   "jwt-secret",
		"JWT_ISSUER":   "vinom-rl",
		"API_KEY_HASH": "$2a$10$abcdefghijklmnopqrstuv",
	}
	for k, v := range required {
		t.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	t.Run("Reads required values and defaults", func(t *testing.T) {
		setRequired(t)

		c, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1", c.HostIP)
		assert.Equal(t, 8080, c.RESTPort)
		assert.Equal(t, 27017, c.DBPort)
		assert.Equal(t, "release", c.GinMode)
		assert.Equal(t, "", c.RedisPassword)
		assert.Equal(t, 0, c.LayoutTTLSeconds)
		assert.Equal(t, 5000, c.TrainEpisodes)
		assert.Equal(t, 1000, c.TrainStepCap)
		assert.Equal(t, 0.15, c.TrainAlpha)
		assert.Equal(t, 0.2, c.TrainEpsilon)
	})

	t.Run("Overrides defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GIN_MODE", "debug")
		t.Setenv("TRAIN_EPISODES", "200")
		t.Setenv("TRAIN_ALPHA", "0.5")
		t.Setenv("LAYOUT_TTL_SECONDS", "3600")

		c, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "debug", c.GinMode)
		assert.Equal(t, 200, c.TrainEpisodes)
		assert.Equal(t, 0.5, c.TrainAlpha)
		assert.Equal(t, 3600, c.LayoutTTLSeconds)
	})

	t.Run("Reports invalid values", func(t *testing.T) {
		setRequired(t)
		t.Setenv("REST_PORT", "eighty")
		t.Setenv("TRAIN_EPSILON", "lots")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidEnv)
		assert.ErrorContains(t, err, "REST_PORT")
		assert.ErrorContains(t, err, "TRAIN_EPSILON")
	})

	t.Run("Reports missing values", func(t *testing.T) {
		setRequired(t)
		require.NoError(t, os.Unsetenv("JWT_SECRET"))
		require.NoError(t, os.Unsetenv("DB_NAME"))

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingEnv)
		assert.ErrorContains(t, err, "JWT_SECRET")
		assert.ErrorContains(t, err, "DB_NAME")
	})
}
