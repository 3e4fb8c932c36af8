// Package shaping holds the per-entity, per-operation projections between
// stored entities and wire payloads. Each (entity, operation) pair is an
// explicit struct; rule enforcement beyond type coercion lives in the
// validation layer, not here.
package shaping

import (
	"time"

	"github.com/libhub/library-api/internal/domain/entity"
)

// BookListView is the minimal list projection of a book.
type BookListView struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	PublicationDate string  `json:"publication_date"`
}

// BookDetailView is the full projection of a book.
type BookDetailView struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	PageCount       int     `json:"page_count"`
	PublicationDate string  `json:"publication_date"`
	Publisher       int64   `json:"publisher"`
	Author          int64   `json:"author"`
	Category        int64   `json:"category"`
}

func BookList(b entity.Book) BookListView {
	return BookListView{
		ID:              b.ID,
		Title:           b.Title,
		Price:           b.Price,
		PublicationDate: b.PublicationDate.Format(time.DateOnly),
	}
}

func BookListAll(books []entity.Book) []BookListView {
	out := make([]BookListView, 0, len(books))
	for _, b := range books {
		out = append(out, BookList(b))
	}
	return out
}

func BookDetail(b *entity.Book) BookDetailView {
	return BookDetailView{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		Price:           b.Price,
		PageCount:       b.PageCount,
		PublicationDate: b.PublicationDate.Format(time.DateOnly),
		Publisher:       b.PublisherID,
		Author:          b.AuthorID,
		Category:        b.CategoryID,
	}
}

// BookCreateInput is the writable field subset for creating a book.
// Referential integrity of publisher/author/category is the store's concern.
type BookCreateInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    int64   `json:"category" binding:"required"`
	PageCount   int     `json:"page_count" binding:"required,gt=0"`
	Publisher   int64   `json:"publisher" binding:"required"`
	Author      int64   `json:"author" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// ToEntity builds a new book from the input. The publication date is
// assigned by the store's column default.
func (in BookCreateInput) ToEntity() entity.Book {
	return entity.Book{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		PageCount:   in.PageCount,
		PublisherID: in.Publisher,
		AuthorID:    in.Author,
		CategoryID:  in.Category,
	}
}

// BookUpdateInput carries the same writable subset with every field
// optional: a nil field means "unchanged" under partial replacement.
type BookUpdateInput struct {
	Title       *string  `json:"title" binding:"omitempty"`
	Description *string  `json:"description" binding:"omitempty"`
	Category    *int64   `json:"category" binding:"omitempty"`
	PageCount   *int     `json:"page_count" binding:"omitempty,gt=0"`
	Publisher   *int64   `json:"publisher" binding:"omitempty"`
	Author      *int64   `json:"author" binding:"omitempty"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
}

// Apply mutates only the supplied fields of an existing book.
func (in BookUpdateInput) Apply(b *entity.Book) {
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Category != nil {
		b.CategoryID = *in.Category
	}
	if in.PageCount != nil {
		b.PageCount = *in.PageCount
	}
	if in.Publisher != nil {
		b.PublisherID = *in.Publisher
	}
	if in.Author != nil {
		b.AuthorID = *in.Author
	}
	if in.Price != nil {
		b.Price = *in.Price
	}
}
