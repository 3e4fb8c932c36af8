package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/libhub/library-api/internal/interface/http"
)

// BookModule wires the book CRUD surface.
// GET/POST /api/books, GET/PUT/PATCH/DELETE /api/books/:id

type BookModule struct {
	Handler *handlers.BookHandler
}

func NewBookModule(h *handlers.BookHandler) *BookModule {
	return &BookModule{Handler: h}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	rg.GET("/books", m.Handler.List)
	rg.POST("/books", m.Handler.Create)
	rg.GET("/books/:id", m.Handler.Get)
	rg.PUT("/books/:id", m.Handler.Update)
	rg.PATCH("/books/:id", m.Handler.Update)
	rg.DELETE("/books/:id", m.Handler.Delete)
}
