package application

import (
	"context"

	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/domain/repository"
	"github.com/libhub/library-api/internal/notifier"
	"github.com/libhub/library-api/internal/shaping"
)

// CategoryService persists categories and emits their lifecycle events
// after the persist step succeeds.
type CategoryService struct {
	Repo     repository.CategoryRepository
	Notifier notifier.Notifier
}

func NewCategoryService(repo repository.CategoryRepository, n notifier.Notifier) *CategoryService {
	return &CategoryService{Repo: repo, Notifier: n}
}

func (s *CategoryService) Create(ctx context.Context, in shaping.CategoryInput) (*entity.Category, error) {
	cat := in.ToEntity()
	if err := s.Repo.Create(ctx, &cat); err != nil {
		return nil, err
	}
	s.Notifier.CategorySaved(ctx, notifier.KindCreated, cat.Name)
	return &cat, nil
}

// Update replaces the writable fields of the category addressed by name.
// Callers look the category up first, so ErrNotFound passes through.
func (s *CategoryService) Update(ctx context.Context, name string, in shaping.CategoryInput) (*entity.Category, error) {
	cat, err := s.Repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	cat.Name = in.Name
	cat.Description = in.Description
	if err := s.Repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	s.Notifier.CategorySaved(ctx, notifier.KindUpdated, cat.Name)
	return cat, nil
}
