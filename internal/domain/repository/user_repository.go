package repository

import (
	"context"

	"github.com/libhub/library-api/internal/domain/entity"
)

// UserWithPosts is a user row annotated with its post count aggregate.
type UserWithPosts struct {
	entity.User
	PostsCnt int
}

// UserRepository defines the interface for user persistence.
//
// ListWithPosts returns only users with at least one post, annotated with
// the count; reviews are fetched separately so list calls stay cheap when
// the nested projection is not requested.
type UserRepository interface {
	ListWithPosts(ctx context.Context) ([]UserWithPosts, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	ReviewsByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]entity.Review, error)
}
