package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-lost-found/internal/domain/notifications"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
)

type NotificationsRepo struct {
	db *sqlx.DB
}

var _ notifications.Repository = (*NotificationsRepo)(nil)

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: wrap(db)}
}

type notificationRow struct {
	ID        string       `db:"id"`
	MatchID   string       `db:"match_id"`
	UserID    string       `db:"user_id"`
	Type      string       `db:"notification_type"`
	Title     string       `db:"title"`
	Message   string       `db:"message"`
	IsRead    bool         `db:"is_read"`
	ReadAt    sql.NullTime `db:"read_at"`
	CreatedAt time.Time    `db:"created_at"`
}

func (r notificationRow) toDomain() notifications.Notification {
	return notifications.Notification{
		ID:        r.ID,
		MatchID:   r.MatchID,
		UserID:    r.UserID,
		Type:      notifications.Type(r.Type),
		Title:     r.Title,
		Message:   r.Message,
		IsRead:    r.IsRead,
		ReadAt:    timePtr(r.ReadAt),
		CreatedAt: r.CreatedAt,
	}
}

var notificationCols = []string{
	"id", "match_id", "user_id", "notification_type", "title", "message", "is_read", "read_at", "created_at",
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("match_notifications")
	ib.Cols(notificationCols...)
	ib.Values(n.ID, n.MatchID, n.UserID, string(n.Type), n.Title, n.Message, n.IsRead, nullTime(n.ReadAt), n.CreatedAt)

	query, args := ib.Build()
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return notifications.Notification{}, notifications.ErrNotFound
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(notificationCols...).From("match_notifications").Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row notificationRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notifications.Notification{}, notifications.ErrNotFound
		}
		return notifications.Notification{}, err
	}
	return row.toDomain(), nil
}

func (r *NotificationsRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]notifications.Notification, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(notificationCols...).From("match_notifications").Where(sb.Equal("user_id", userID))
	if unreadOnly {
		sb.Where(sb.Equal("is_read", false))
	}
	sb.OrderBy("created_at DESC", "id DESC")

	query, args := sb.Build()
	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]notifications.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *NotificationsRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM match_notifications WHERE user_id = $1 AND NOT is_read
	`, userID)
	return n, err
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE match_notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, $2)
		WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notifications.ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) MarkAllRead(ctx context.Context, userID string, at time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE match_notifications
		SET is_read = TRUE, read_at = $2
		WHERE user_id = $1 AND NOT is_read
	`, userID, at)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
