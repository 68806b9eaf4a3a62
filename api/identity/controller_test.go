package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-rl/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	token string
	err   error
}

func (s *stubAuthenticator) IssueToken(string) (string, error) {
	return s.token, s.err
}

type stubTokenizer struct {
	claims map[string]interface{}
	err    error
}

func (s *stubTokenizer) Generate(string, map[string]interface{}, time.Duration) (string, error) {
	return "", nil
}

func (s *stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return s.claims, s.err
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTokenRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(a *stubAuthenticator) *gin.Engine {
		engine := gin.New()
		c := NewIdentityServer(a)
		c.RegisterPublic(engine.Group("/v1"))
		c.RegisterProtected(engine.Group("/v1"))
		return engine
	}

	t.Run("Issues a token", func(t *testing.T) {
		w := postJSON(newEngine(&stubAuthenticator{token: "abc"}), "/v1/auth/token", `{"api_key":"secret"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "abc", resp.Token)
	})

	t.Run("Missing key", func(t *testing.T) {
		w := postJSON(newEngine(&stubAuthenticator{}), "/v1/auth/token", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Wrong key", func(t *testing.T) {
		w := postJSON(newEngine(&stubAuthenticator{err: service.ErrInvalidAPIKey}), "/v1/auth/token", `{"api_key":"guess"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Tokenizer failure", func(t *testing.T) {
		w := postJSON(newEngine(&stubAuthenticator{err: errors.New("signing failed")}), "/v1/auth/token", `{"api_key":"secret"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	claims := map[string]interface{}{"sub": "operator"}
	engine := gin.New()
	engine.Use(Authoriz(&stubTokenizer{claims: claims}))
	engine.GET("/private", func(c *gin.Context) {
		got, _ := c.Get(ContextUserClaims)
		c.JSON(http.StatusOK, got)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"No header", "", http.StatusUnauthorized},
		{"Not a bearer token", "Basic good", http.StatusUnauthorized},
		{"Missing token", "Bearer", http.StatusUnauthorized},
		{"Invalid token", "Bearer bad", http.StatusUnauthorized},
		{"Valid token", "Bearer good", http.StatusOK},
		{"Case insensitive scheme", "bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"sub":"operator"}`, w.Body.String())
			}
		})
	}
}
