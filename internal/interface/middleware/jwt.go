package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
)

const (
	CtxUserIDKey = "userID"
	CtxRoleKey   = "role"
)

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

// Identity reads an optional bearer session token and records its subject in the context
// for logging. It never rejects a request: routes stay public.
func Identity(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := application.BearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := tokens.Verify(token); err == nil && claims.Purpose == "" {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxRoleKey, claims.Role)
			}
		}
		c.Next()
	}
}
