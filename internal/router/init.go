package router

import (
	"github.com/libhub/library-api/internal/application"
	"github.com/libhub/library-api/internal/container"
	pginfra "github.com/libhub/library-api/internal/infrastructure/postgres"
	handlers "github.com/libhub/library-api/internal/interface/http"
	"github.com/libhub/library-api/internal/router/modules"
	"github.com/libhub/library-api/pkg/helpers"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup after the container
// singletons are in place.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	bookRepo := pginfra.NewBookRepository(pool)
	categoryRepo := pginfra.NewCategoryRepository(pool)
	userRepo := pginfra.NewUserRepository(pool)

	blacklist := helpers.NewTokenBlacklist(container.GetRedis())

	userSvc := application.NewUserService(userRepo, container.GetJWT(), blacklist, container.GetNotifier(), logger)
	categorySvc := application.NewCategoryService(categoryRepo, container.GetNotifier())

	r.Add(modules.NewBookModule(handlers.NewBookHandler(bookRepo, logger)))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(categorySvc, logger)))
	r.Add(modules.NewUserModule(
		handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure),
		container.GetJWT(),
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
