package shaping

import (
	"time"

	"github.com/libhub/library-api/internal/domain/entity"
)

// ReviewView is the nested projection of a review inside a user list row.
type ReviewView struct {
	ID          int64  `json:"id"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// UserListView is the list projection of a user, annotated with the post
// count aggregate. Reviews is a pointer so that it is omitted entirely
// unless the caller asked for the related projection, while an empty
// review list still serializes as [].
type UserListView struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	PostsCnt  int           `json:"posts_cnt"`
	Reviews   *[]ReviewView `json:"reviews,omitempty"`
}

// UserList shapes one annotated user row. When includeRelated is true the
// given reviews are nested; otherwise the reviews key is absent.
func UserList(u *entity.User, postsCnt int, reviews []entity.Review, includeRelated bool) UserListView {
	view := UserListView{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role.String(),
		PostsCnt:  postsCnt,
	}
	if includeRelated {
		nested := make([]ReviewView, 0, len(reviews))
		for _, rev := range reviews {
			nested = append(nested, ReviewView{ID: rev.ID, Rating: rev.Rating, Description: rev.Description})
		}
		view.Reviews = &nested
	}
	return view
}

// UserDetailView is the full projection of a user, everything except the
// credential hash.
type UserDetailView struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Gender     string `json:"gender"`
	IsStaff    bool   `json:"is_staff"`
	DateJoined string `json:"date_joined"`
}

func UserDetail(u *entity.User) UserDetailView {
	return UserDetailView{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role.String(),
		Gender:     u.Gender,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined.UTC().Format(time.RFC3339),
	}
}

// UserCreateInput is the writable field subset for creating a user. The
// password pair is write-only: the confirmation is discarded after the
// equality check and the plaintext never leaves the create pipeline.
type UserCreateInput struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"first_name" binding:"required,alpha"`
	LastName   string `json:"last_name" binding:"required,alpha"`
	Role       string `json:"role" binding:"required"`
	Gender     string `json:"gender"`
	Password   string `json:"password" binding:"required,pwd"`
	RePassword string `json:"re_password" binding:"required,eqfield=Password"`
}
