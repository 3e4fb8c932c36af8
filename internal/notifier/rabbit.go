package notifier

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/libhub/library-api/pkg/helpers"
)

// Rabbit publishes lifecycle events to the durable event queue consumed by
// cmd/event_worker. Publish failures are logged and swallowed.
type Rabbit struct {
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewRabbit(pub *helpers.RabbitPublisher, logger *logrus.Logger) *Rabbit {
	return &Rabbit{Pub: pub, Logger: logger}
}

func (n *Rabbit) CategorySaved(ctx context.Context, kind EventKind, name string) {
	n.publish(ctx, Event{Type: TypeCategorySaved, Kind: kind, Name: name})
}

func (n *Rabbit) ModeratorCreated(ctx context.Context, username, email string) {
	n.publish(ctx, Event{Type: TypeModeratorCreated, Username: username, Email: email})
}

func (n *Rabbit) publish(ctx context.Context, ev Event) {
	if err := n.Pub.PublishJSON(ctx, ev); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("event", ev.Type).Warn("event publish failed")
	}
}

var _ Notifier = (*Rabbit)(nil)
