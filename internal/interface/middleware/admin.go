package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskstack/taskstack/pkg/response"
)

// RequireAdmin allows only callers whose authenticated email is in the
// configured admin list. There is no role table; the capability is granted
// by deployment configuration. Must run after Auth.
func RequireAdmin(adminEmails []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allowed[strings.ToLower(e)] = struct{}{}
	}
	return func(c *gin.Context) {
		email := strings.ToLower(c.GetString(CtxUserEmailKey))
		if _, ok := allowed[email]; !ok {
			response.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
