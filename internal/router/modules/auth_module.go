package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskstack/taskstack/internal/container"
	handlers "github.com/taskstack/taskstack/internal/interface/http"
	"github.com/taskstack/taskstack/internal/interface/middleware"
	"github.com/taskstack/taskstack/pkg/helpers"
)

// AuthModule wires registration, login, and the protected user routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me, GET /api/auth/users

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.GET("/auth/users", m.Handler.ListUsers)
	}
}
