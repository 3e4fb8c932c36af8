// Package notifier is the side-channel for entity lifecycle events. The
// resource pipeline emits events after a successful persist step; delivery
// is fire-and-forget and never affects the HTTP response.
package notifier

import "context"

// EventKind discriminates create from update lifecycle events.
type EventKind string

const (
	KindCreated EventKind = "created"
	KindUpdated EventKind = "updated"
)

// Event types as found on the queue.
const (
	TypeCategorySaved    = "category_saved"
	TypeModeratorCreated = "moderator_created"
)

// Event is the JSON payload put on the event queue.
type Event struct {
	Type     string    `json:"type"`
	Kind     EventKind `json:"kind,omitempty"`
	Name     string    `json:"name,omitempty"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email,omitempty"`
}

// Notifier is implemented by the RabbitMQ publisher in production and by
// fakes in tests.
type Notifier interface {
	// CategorySaved fires when a category is created or updated, carrying
	// the category name and the event kind.
	CategorySaved(ctx context.Context, kind EventKind, name string)
	// ModeratorCreated fires when a new staff user with the moderator role
	// is persisted.
	ModeratorCreated(ctx context.Context, username, email string)
}

// Nop discards all events. Used when the event queue is not configured.
type Nop struct{}

func (Nop) CategorySaved(context.Context, EventKind, string) {}

func (Nop) ModeratorCreated(context.Context, string, string) {}

var _ Notifier = Nop{}
