package repository

import (
	"context"

	"github.com/libhub/library-api/internal/domain/entity"
)

// BookRepository defines the interface for book persistence.
type BookRepository interface {
	List(ctx context.Context) ([]entity.Book, error)
	GetByID(ctx context.Context, id int64) (*entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
	Update(ctx context.Context, b *entity.Book) error
	Delete(ctx context.Context, id int64) error
}
