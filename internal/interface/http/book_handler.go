// Package handlers contains the HTTP resource handlers. Every handler runs
// the same pipeline: look the entity up, validate the inbound payload,
// mutate the store, shape the result, translate failures into the HTTP
// error taxonomy. Not-found always short-circuits validation, and
// validation always short-circuits persistence.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/domain/repository"
	"github.com/libhub/library-api/internal/shaping"
	"github.com/libhub/library-api/pkg/response"
	"github.com/libhub/library-api/pkg/validation"
)

type BookHandler struct {
	Repo   repository.BookRepository
	Logger *logrus.Logger
}

func NewBookHandler(repo repository.BookRepository, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Repo: repo, Logger: logger}
}

func bookNotFoundMsg(id string) string {
	return fmt.Sprintf("book with id=%s not found", id)
}

// List GET /books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.Repo.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list books failed")
		response.PersistenceFailed(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shaping.BookListAll(books))
}

// Get GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	book, ok := h.lookup(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, shaping.BookDetail(book))
}

// Create POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var in shaping.BookCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err))
		return
	}
	book := in.ToEntity()
	if err := h.Repo.Create(c.Request.Context(), &book); err != nil {
		h.Logger.WithError(err).Error("create book failed")
		response.PersistenceFailed(c, fmt.Errorf("failed to save book: %w", err))
		return
	}
	response.JSON(c, http.StatusCreated, shaping.BookDetail(&book))
}

// Update PUT|PATCH /books/:id. PUT requires the full writable subset;
// PATCH treats omitted fields as unchanged.
func (h *BookHandler) Update(c *gin.Context) {
	book, ok := h.lookup(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodPut {
		var in shaping.BookCreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.ValidationFailed(c, validation.ToDetails(err))
			return
		}
		replaced := in.ToEntity()
		replaced.ID = book.ID
		replaced.PublicationDate = book.PublicationDate
		*book = replaced
	} else {
		var in shaping.BookUpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.ValidationFailed(c, validation.ToDetails(err))
			return
		}
		in.Apply(book)
	}

	if err := h.Repo.Update(c.Request.Context(), book); err != nil {
		h.Logger.WithError(err).WithField("book_id", book.ID).Error("update book failed")
		response.PersistenceFailed(c, fmt.Errorf("failed to update book: %w", err))
		return
	}
	response.JSON(c, http.StatusOK, shaping.BookDetail(book))
}

// Delete DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	book, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.Repo.Delete(c.Request.Context(), book.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, bookNotFoundMsg(c.Param("id")))
			return
		}
		// Typically a referential-integrity violation.
		h.Logger.WithError(err).WithField("book_id", book.ID).Error("delete book failed")
		response.PersistenceFailed(c, fmt.Errorf("failed to delete book: %w", err))
		return
	}
	response.NoContent(c)
}

// lookup resolves the :id path param into a stored book, writing the 404
// or 500 response itself when resolution fails.
func (h *BookHandler) lookup(c *gin.Context) (*entity.Book, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.NotFound(c, bookNotFoundMsg(raw))
		return nil, false
	}
	book, err := h.Repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, bookNotFoundMsg(raw))
		return nil, false
	}
	if err != nil {
		h.Logger.WithError(err).WithField("book_id", id).Error("get book failed")
		response.PersistenceFailed(c, err)
		return nil, false
	}
	return book, true
}
