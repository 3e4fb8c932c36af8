package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name_category, description
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := make([]entity.Category, 0)
	for rows.Next() {
		var cat entity.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// GetByName is a case-sensitive exact match on the unique name column.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	cat := &entity.Category{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name_category, description
		FROM categories
		WHERE name_category = $1
	`, name)
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name_category, description)
		VALUES ($1, $2)
		RETURNING id
	`, cat.Name, cat.Description)

	if err := row.Scan(&cat.ID); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, cat *entity.Category) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET name_category = $1, description = $2
		WHERE id = $3
	`, cat.Name, cat.Description, cat.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) DeleteByName(ctx context.Context, name string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE name_category = $1`, name)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
