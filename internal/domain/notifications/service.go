package notifications

import (
	"context"
	"strings"
	"time"

	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/metrics"
	"pet-lost-found/internal/ports/notify"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	pub     notify.Publisher
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService: pub, log y m pueden ser nil.
func NewService(repo Repository, pub notify.Publisher, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		pub:     pub,
		log:     log.With(map[string]any{"component": "notifications"}),
		metrics: m,
		now:     time.Now,
	}
}

type EmitInput struct {
	MatchID string
	UserID  string
	Type    Type
	Title   string
	Message string
}

// Emit guarda la notificación y la publica al notifier.
// Un fallo al publicar se loguea; el registro ya quedó guardado.
func (s *Service) Emit(ctx context.Context, in EmitInput) (Notification, error) {
	in.MatchID = strings.TrimSpace(in.MatchID)
	in.UserID = strings.TrimSpace(in.UserID)
	in.Title = strings.TrimSpace(in.Title)
	if in.MatchID == "" || in.UserID == "" || in.Title == "" || !in.Type.Valid() {
		return Notification{}, ErrInvalidInput
	}

	n := Notification{
		ID:        uuid.NewString(),
		MatchID:   in.MatchID,
		UserID:    in.UserID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	s.metrics.NotificationCreated(string(n.Type))

	if s.pub != nil {
		err := s.pub.Publish(ctx, notify.Event{
			NotificationID: n.ID,
			MatchID:        n.MatchID,
			UserID:         n.UserID,
			Type:           string(n.Type),
			Title:          n.Title,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt,
		})
		if err != nil {
			s.metrics.PublishFailed()
			s.log.Warn("notification publish failed", map[string]any{
				"notification_id": n.ID, "match_id": n.MatchID, "error": err,
			})
		}
	}

	return n, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead: solo el destinatario. Idempotente.
func (s *Service) MarkRead(ctx context.Context, userID, id string) (Notification, error) {
	n, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Notification{}, err
	}
	if n.UserID != userID {
		// no revelamos notificaciones ajenas
		return Notification{}, ErrNotFound
	}
	if n.IsRead {
		return n, nil
	}
	if err := s.repo.MarkRead(ctx, n.ID, s.now()); err != nil {
		return Notification{}, err
	}
	return s.repo.GetByID(ctx, n.ID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.MarkAllRead(ctx, userID, s.now())
}
