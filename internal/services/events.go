package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mobilebazar/internal/logging"
)

// Event types published after successful writes.
const (
	EventOrderCreated       = "order.created"
	EventOrderDeleted       = "order.deleted"
	EventOrderStatusUpdated = "order.status_updated"
	EventProductCreated     = "product.created"
	EventProductUpdated     = "product.updated"
	EventProductDeleted     = "product.deleted"
	EventReviewCreated      = "review.created"
	EventUserCreated        = "user.created"
	EventUserUpserted       = "user.upserted"
	EventUserAdminGranted   = "user.admin_granted"
)

// EventPublisher delivers write events to a broker.
// Both the RabbitMQ client and the Kafka writer satisfy it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

// Event describes a completed write.
type Event struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	ID         string    `json:"id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// events publishes best effort: a failure is logged and never returned.
type events struct {
	pub EventPublisher
	now func() time.Time
}

func newEvents(pub EventPublisher) events {
	return events{pub: pub, now: time.Now}
}

func (e events) publish(ctx context.Context, ev Event) {
	if e.pub == nil {
		return
	}
	ev.OccurredAt = e.now().UTC()

	key := ev.ID
	if key == "" {
		key = ev.Email
	}
	if err := e.pub.PublishEvent(ctx, key, ev); err != nil {
		logging.FromContext(ctx).Warn("failed to publish event",
			"type", ev.Type, "key", key, "error", err)
		return
	}
	logging.FromContext(ctx).Debug("event published", "type", ev.Type, "key", key)
}

// idString renders a store-assigned id for an event key.
func idString(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
