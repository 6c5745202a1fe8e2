package notify

import (
	"context"
	"time"
)

// Event es lo que recibe el notifier (email / websocket) cuando se crea una notificación.
type Event struct {
	NotificationID string    `json:"notification_id"`
	MatchID        string    `json:"match_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"notification_type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// Publisher entrega eventos al notifier. Fire-and-forget desde el punto de vista del motor.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
