package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planpulse/internal/model"
	"planpulse/pkg/auth"
	"planpulse/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{JWTSecret: testSecret, TokenExpiry: time.Hour},
	}

	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CallerID(c), "role": string(CallerRole(c))})
	})
	r.GET("/managers", JWTAuth(), RequireRole(model.RoleManager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doAuthRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := setupAuthRouter(t)

	t.Run("missing token", func(t *testing.T) {
		w := doAuthRequest(r, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doAuthRequest(r, "/protected", "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := auth.GenerateToken("user-1", string(model.RoleEmployee), "other-secret", time.Hour)
		require.NoError(t, err)
		w := doAuthRequest(r, "/protected", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.GenerateToken("user-1", string(model.RoleEmployee), testSecret, -time.Minute)
		require.NoError(t, err)
		w := doAuthRequest(r, "/protected", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.GenerateToken("user-1", string(model.RoleEmployee), testSecret, time.Hour)
		require.NoError(t, err)
		w := doAuthRequest(r, "/protected", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})
}

func TestRequireRole(t *testing.T) {
	r := setupAuthRouter(t)

	cases := []struct {
		name string
		role model.Role
		want int
	}{
		{"employee is rejected", model.RoleEmployee, http.StatusForbidden},
		{"manager passes", model.RoleManager, http.StatusOK},
		{"admin bypasses the guard", model.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := auth.GenerateToken("user-1", string(tc.role), testSecret, time.Hour)
			require.NoError(t, err)
			w := doAuthRequest(r, "/managers", token)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
