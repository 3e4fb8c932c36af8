package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libhub/library-api/internal/container"
	handlers "github.com/libhub/library-api/internal/interface/http"
	"github.com/libhub/library-api/internal/interface/middleware"
	"github.com/libhub/library-api/pkg/helpers"
)

// UserModule wires user listing/creation and the session flows.
// Public: GET/POST /api/users, POST /api/users/{register,login,logout,refresh}
// Protected: GET /api/users/profile

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get per-IP rate limits
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.GET("/users", m.Handler.List)
	rg.POST("/users", m.Handler.Create)
	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)
	rg.POST("/users/logout", m.Handler.Logout)
	rg.POST("/users/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/users/profile", m.Handler.Profile)
	}
}
