package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskstack/taskstack/internal/container"
	handlers "github.com/taskstack/taskstack/internal/interface/http"
	"github.com/taskstack/taskstack/internal/interface/middleware"
)

// PasswordModule wires the public password reset endpoints. Both are
// unauthenticated by design and tightly rate limited per IP.

type PasswordModule struct {
	Handler *handlers.PasswordHandler
}

func NewPasswordModule(h *handlers.PasswordHandler) *PasswordModule {
	return &PasswordModule{Handler: h}
}

func (m *PasswordModule) Register(rg *gin.RouterGroup) {
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/password/forgot-password", forgotLimiter, m.Handler.Forgot)
	rg.POST("/password/reset-password", resetLimiter, m.Handler.Reset)
}
