package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey = "auth_user_id"
	roleKey   = "auth_role"
)

// RequireAuth validates the Bearer token and stores the conductor identity
// in the request context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if id, ok := claims["user_id"].(float64); ok {
				c.Set(userIDKey, int64(id))
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(roleKey, role)
			}
		}
		c.Next()
	}
}

// GetUserID returns the authenticated conductor's id, 0 when absent.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetRole returns the authenticated role, empty when absent.
func GetRole(c *gin.Context) string {
	if v, ok := c.Get(roleKey); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
