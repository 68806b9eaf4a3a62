package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtService(t *testing.T) {
	// Setup
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	secretKey := base64.URLEncoding.EncodeToString(bytes)
	issuer := "testIssuer"

	svc := NewJwtService(secretKey, issuer)

	t.Run("Generate and Decode valid token", func(t *testing.T) {
		claims := map[string]interface{}{
			"role": "operator",
		}

		token, err := svc.Generate("operator", claims, 5*time.Minute)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		decoded, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "operator", decoded["sub"])
		assert.Equal(t, "operator", decoded["role"])
		assert.Equal(t, issuer, decoded["iss"])
	})

	t.Run("Reserved claims cannot be overridden", func(t *testing.T) {
		claims := map[string]interface{}{
			"iss": "someoneElse",
			"sub": "intruder",
		}

		token, err := svc.Generate("operator", claims, 5*time.Minute)
		require.NoError(t, err)

		decoded, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "operator", decoded["sub"])
		assert.Equal(t, issuer, decoded["iss"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate("operator", nil, -time.Minute)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Decode token of another issuer", func(t *testing.T) {
		other := NewJwtService(secretKey, "otherIssuer")
		token, err := other.Generate("operator", nil, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrIssuerMismatch)
	})

	t.Run("Decode token signed with another secret", func(t *testing.T) {
		other := NewJwtService("anotherSecret", issuer)
		token, err := other.Generate("operator", nil, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})
}
