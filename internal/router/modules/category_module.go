package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/libhub/library-api/internal/interface/http"
)

// CategoryModule wires the category surface; the path key is the unique
// category name, not a numeric id.

type CategoryModule struct {
	Handler *handlers.CategoryHandler
}

func NewCategoryModule(h *handlers.CategoryHandler) *CategoryModule {
	return &CategoryModule{Handler: h}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", m.Handler.List)
	rg.POST("/categories", m.Handler.Create)
	rg.GET("/categories/:name", m.Handler.Get)
	rg.PUT("/categories/:name", m.Handler.Update)
	rg.DELETE("/categories/:name", m.Handler.Delete)
}
