package notifications_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"pet-lost-found/internal/adapters/storage/memory"
	"pet-lost-found/internal/domain/notifications"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/metrics"
	"pet-lost-found/internal/ports/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	err    error
	events []notify.Event
}

func (p *fakePublisher) Publish(ctx context.Context, e notify.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func emitInput(user string) notifications.EmitInput {
	return notifications.EmitInput{
		MatchID: "match-1",
		UserID:  user,
		Type:    notifications.TypeMatchFound,
		Title:   "Potential match for your lost pet",
		Message: "Check the match details.",
	}
}

func TestEmit_StoresAndPublishes(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := notifications.NewService(memory.NewNotificationRepo(), pub, nil, metrics.New())

	n, err := svc.Emit(ctx, emitInput("owner-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.IsRead)

	require.Len(t, pub.events, 1)
	assert.Equal(t, n.ID, pub.events[0].NotificationID)
	assert.Equal(t, "match_found", pub.events[0].Type)
	assert.Equal(t, "owner-1", pub.events[0].UserID)

	items, err := svc.ListByUser(ctx, "owner-1", false)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestEmit_PublishFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &buf})
	svc := notifications.NewService(memory.NewNotificationRepo(), &fakePublisher{err: errors.New("broker down")}, log, nil)

	_, err := svc.Emit(ctx, emitInput("owner-1"))
	require.NoError(t, err)

	n, err := svc.UnreadCount(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "notification publish failed")
	assert.Contains(t, buf.String(), "broker down")
}

func TestEmit_Validation(t *testing.T) {
	svc := notifications.NewService(memory.NewNotificationRepo(), nil, nil, nil)

	in := emitInput("owner-1")
	in.Type = "bogus"
	_, err := svc.Emit(context.Background(), in)
	assert.ErrorIs(t, err, notifications.ErrInvalidInput)

	_, err = svc.Emit(context.Background(), emitInput(" "))
	assert.ErrorIs(t, err, notifications.ErrInvalidInput)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	svc := notifications.NewService(memory.NewNotificationRepo(), nil, nil, nil)

	n, err := svc.Emit(ctx, emitInput("owner-1"))
	require.NoError(t, err)
	_, err = svc.Emit(ctx, emitInput("owner-1"))
	require.NoError(t, err)

	// ajena => not found
	_, err = svc.MarkRead(ctx, "finder-1", n.ID)
	assert.ErrorIs(t, err, notifications.ErrNotFound)

	read, err := svc.MarkRead(ctx, "owner-1", n.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	again, err := svc.MarkRead(ctx, "owner-1", n.ID)
	require.NoError(t, err)
	assert.Equal(t, *read.ReadAt, *again.ReadAt)

	unread, err := svc.ListByUser(ctx, "owner-1", true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	updated, err := svc.MarkAllRead(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	count, err := svc.UnreadCount(ctx, "owner-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
