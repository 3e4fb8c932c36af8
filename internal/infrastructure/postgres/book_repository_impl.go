package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/domain/repository"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `id, title, description, price, page_count, publication_date, publisher_id, author_id, category_id`

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Description, &b.Price, &b.PageCount,
		&b.PublicationDate, &b.PublisherID, &b.AuthorID, &b.CategoryID)
}

func (r *BookRepository) List(ctx context.Context) ([]entity.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookColumns+`
		FROM books
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]entity.Book, 0)
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	b := &entity.Book{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = $1
	`, id)
	if err := scanBook(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Create leaves publication_date to the column default (the release date
// is not part of the writable subset).
func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (title, description, price, page_count, publisher_id, author_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, publication_date
	`, b.Title, b.Description, b.Price, b.PageCount, b.PublisherID, b.AuthorID, b.CategoryID)

	return row.Scan(&b.ID, &b.PublicationDate)
}

func (r *BookRepository) Update(ctx context.Context, b *entity.Book) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE books
		SET title = $1, description = $2, price = $3, page_count = $4,
		    publication_date = $5, publisher_id = $6, author_id = $7, category_id = $8
		WHERE id = $9
	`, b.Title, b.Description, b.Price, b.PageCount, b.PublicationDate,
		b.PublisherID, b.AuthorID, b.CategoryID, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BookRepository = (*BookRepository)(nil)
