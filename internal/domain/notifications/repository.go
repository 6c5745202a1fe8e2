package notifications

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notification not found")
)

type Repository interface {
	Create(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)

	// ListByUser ordena por created_at desc.
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead no toca read_at si ya estaba leída.
	MarkRead(ctx context.Context, id string, at time.Time) error
	// MarkAllRead devuelve cuántas pasaron a leídas.
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int, error)
}
