package entity

import "time"

// User is the aggregate root for the accounts domain.
// Password holds a bcrypt hash and is never serialized.
//
// IsStaff is forced true at creation time whenever the role is moderator
// or admin, not merely derived on read.
type User struct {
	ID         int64
	Username   string
	Email      string
	FirstName  string
	LastName   string
	Role       Role
	Gender     string
	Password   string
	IsStaff    bool
	DateJoined time.Time
}

// Review is a user's review of a book. Read-only in this service; it is
// only surfaced as a nested projection of its owning user.
type Review struct {
	ID          int64
	Rating      int
	Description string
	UserID      int64
}
