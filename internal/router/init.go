package router

import (
	"github.com/taskstack/taskstack/internal/application"
	"github.com/taskstack/taskstack/internal/container"
	pginfra "github.com/taskstack/taskstack/internal/infrastructure/postgres"
	handlers "github.com/taskstack/taskstack/internal/interface/http"
	"github.com/taskstack/taskstack/internal/router/modules"
)

// InitModules builds every application module from the container singletons
// and registers them with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	taskRepo := pginfra.NewTaskRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger)
	taskSvc := application.NewTaskService(taskRepo, logger)
	resetSvc := application.NewResetService(
		userRepo,
		container.GetRedis(),
		container.GetRabbitPub(),
		logger,
		cfg.ResetTokenTTL,
		cfg.ResetPasswordURL,
		cfg.MailSendEnabled,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), container.GetJWT()))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(taskSvc, logger), container.GetJWT()))
	r.Add(modules.NewPasswordModule(handlers.NewPasswordHandler(resetSvc, logger, !cfg.IsProduction())))
}
