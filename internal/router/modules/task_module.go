package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskstack/taskstack/internal/container"
	handlers "github.com/taskstack/taskstack/internal/interface/http"
	"github.com/taskstack/taskstack/internal/interface/middleware"
	"github.com/taskstack/taskstack/pkg/helpers"
)

// TaskModule wires the task CRUD routes. Every route runs behind the auth
// gate; the unscoped listing additionally requires the admin capability.

type TaskModule struct {
	Handler *handlers.TaskHandler
	JWT     *helpers.JWTManager
}

func NewTaskModule(h *handlers.TaskHandler, jwt *helpers.JWTManager) *TaskModule {
	return &TaskModule{Handler: h, JWT: jwt}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/tasks", m.Handler.Create)
		auth.GET("/tasks", m.Handler.List)
		auth.GET("/tasks/:id", m.Handler.Get)
		auth.PUT("/tasks/:id", m.Handler.Update)
		auth.DELETE("/tasks/:id", m.Handler.Delete)

		admin := auth.Group("/admin")
		admin.Use(middleware.RequireAdmin(container.GetConfig().AdminEmailList()))
		{
			admin.GET("/tasks", m.Handler.ListAll)
		}
	}
}
