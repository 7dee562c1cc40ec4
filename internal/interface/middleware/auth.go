package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskstack/taskstack/pkg/helpers"
	"github.com/taskstack/taskstack/pkg/response"
)

// Context keys populated by Auth on success.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

const bearerPrefix = "Bearer "

// Auth reads the Authorization header, verifies the bearer token, and injects
// the caller's identity into the Gin context. Rejections short-circuit with
// a stable code so clients can tell an expired token ("token_expired", prompt
// re-login) from a tampered one ("token_invalid", hard logout).
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Error(c, http.StatusUnauthorized, "no_token", "no token provided, authorization denied", nil)
			c.Abort()
			return
		}
		token := header[len(bearerPrefix):]
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "no_token", "no token provided, authorization denied", nil)
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.Error(c, http.StatusUnauthorized, "token_expired", "token expired", nil)
			} else {
				response.Error(c, http.StatusUnauthorized, "token_invalid", "invalid token", nil)
			}
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user's id from the context.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserIDKey)
}
