package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"redemption-service/internal/domain/auth"
	"redemption-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxSubjectIDKey   = "subject_id"
	ctxSubjectRoleKey = "subject_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// RequireAuth accepts service-to-service bearer tokens only.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		subjectID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxSubjectIDKey, subjectID)
		c.Set(ctxSubjectRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"sub_id": subjectID.String(),
			"role":   string(role),
		})
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetSubjectRole(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !role.AtLeast(minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetSubjectID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxSubjectIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetSubjectRole(c *gin.Context) (auth.Role, bool) {
	v, exists := c.Get(ctxSubjectRoleKey)
	if !exists {
		return "", false
	}

	role, ok := v.(auth.Role)
	return role, ok
}
