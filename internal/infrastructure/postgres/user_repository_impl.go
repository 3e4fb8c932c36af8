package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, first_name, last_name, role, gender, password_hash, is_staff, date_joined`

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.Role, &u.Gender, &u.Password, &u.IsStaff, &u.DateJoined)
}

// ListWithPosts annotates each user with its post count and keeps only
// users having at least one post, mirroring the list view's aggregate
// filter in SQL.
func (r *UserRepository) ListWithPosts(ctx context.Context) ([]repository.UserWithPosts, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name,
		       u.role, u.gender, u.password_hash, u.is_staff, u.date_joined,
		       COUNT(p.id) AS posts_cnt
		FROM users u
		JOIN posts p ON p.user_id = u.id
		GROUP BY u.id
		HAVING COUNT(p.id) > 0
		ORDER BY u.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]repository.UserWithPosts, 0)
	for rows.Next() {
		var u repository.UserWithPosts
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.Role, &u.Gender, &u.Password, &u.IsStaff, &u.DateJoined, &u.PostsCnt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1
	`, username)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, first_name, last_name, role, gender, password_hash, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, date_joined
	`, u.Username, u.Email, u.FirstName, u.LastName, u.Role, u.Gender, u.Password, u.IsStaff)

	if err := row.Scan(&u.ID, &u.DateJoined); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) ReviewsByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]entity.Review, error) {
	if len(userIDs) == 0 {
		return map[int64][]entity.Review{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, rating, description, user_id
		FROM reviews
		WHERE user_id = ANY($1)
		ORDER BY id
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]entity.Review, len(userIDs))
	for rows.Next() {
		var rev entity.Review
		if err := rows.Scan(&rev.ID, &rev.Rating, &rev.Description, &rev.UserID); err != nil {
			return nil, err
		}
		out[rev.UserID] = append(out[rev.UserID], rev)
	}
	return out, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
