package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/libhub/library-api/internal/application"
	"github.com/libhub/library-api/internal/domain/repository"
	"github.com/libhub/library-api/internal/shaping"
	"github.com/libhub/library-api/pkg/response"
	"github.com/libhub/library-api/pkg/validation"
)

// CategoryHandler serves categories, which are addressed by their unique
// name on the wire rather than by numeric id.
type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

func categoryNotFoundMsg(name string) string {
	return fmt.Sprintf("category with name=%s not found", name)
}

// List GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Svc.Repo.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list categories failed")
		response.PersistenceFailed(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shaping.CategoryAll(cats))
}

// Get GET /categories/:name
func (h *CategoryHandler) Get(c *gin.Context) {
	name := c.Param("name")
	cat, err := h.Svc.Repo.GetByName(c.Request.Context(), name)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, categoryNotFoundMsg(name))
		return
	}
	if err != nil {
		h.Logger.WithError(err).WithField("category", name).Error("get category failed")
		response.PersistenceFailed(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shaping.Category(cat))
}

// Create POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var in shaping.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), in)
	if errors.Is(err, repository.ErrDuplicate) {
		response.ValidationFailed(c, map[string]string{"name_category": "already exists"})
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("create category failed")
		response.PersistenceFailed(c, fmt.Errorf("failed to save category: %w", err))
		return
	}
	response.JSON(c, http.StatusCreated, shaping.Category(cat))
}

// Update PUT /categories/:name. Existence is checked before the payload
// is validated.
func (h *CategoryHandler) Update(c *gin.Context) {
	name := c.Param("name")
	if _, err := h.Svc.Repo.GetByName(c.Request.Context(), name); errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, categoryNotFoundMsg(name))
		return
	}
	var in shaping.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), name, in)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, categoryNotFoundMsg(name))
		return
	}
	if errors.Is(err, repository.ErrDuplicate) {
		response.ValidationFailed(c, map[string]string{"name_category": "already exists"})
		return
	}
	if err != nil {
		h.Logger.WithError(err).WithField("category", name).Error("update category failed")
		response.PersistenceFailed(c, fmt.Errorf("failed to update category: %w", err))
		return
	}
	response.JSON(c, http.StatusOK, shaping.Category(cat))
}

// Delete DELETE /categories/:name
func (h *CategoryHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	err := h.Svc.Repo.DeleteByName(c.Request.Context(), name)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, categoryNotFoundMsg(name))
		return
	}
	if err != nil {
		// Typically books still referencing the category.
		h.Logger.WithError(err).WithField("category", name).Error("delete category failed")
		response.PersistenceFailed(c, fmt.Errorf("failed to delete category: %w", err))
		return
	}
	response.NoContent(c)
}
