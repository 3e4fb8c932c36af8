package repository

import (
	"context"

	"github.com/libhub/library-api/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence.
// Categories are addressed by their unique name, not by numeric id.
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Create(ctx context.Context, cat *entity.Category) error
	Update(ctx context.Context, cat *entity.Category) error
	DeleteByName(ctx context.Context, name string) error
}
