package middleware

import (
	"net/http"
	"strings"

	"planpulse/internal/model"
	"planpulse/pkg/auth"
	"planpulse/pkg/config"
	"planpulse/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "auth_user_id"
	ContextRole   = "auth_role"
)

// JWTAuth validates the bearer token and stores the caller's identity on the
// request context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token, config.GlobalConfig.Auth.JWTSecret)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "rejected token: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
// ADMIN passes every guard.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := model.Role(c.GetString(ContextRole))
		if role == model.RoleAdmin {
			c.Next()
			return
		}
		if _, ok := allowed[role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user ID from the gin context
func CallerID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// CallerRole returns the authenticated role from the gin context
func CallerRole(c *gin.Context) model.Role {
	return model.Role(c.GetString(ContextRole))
}
