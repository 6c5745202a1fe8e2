package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/domain/notifications"
	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/metrics"
)

// Service expone los matches a sus participantes: consulta, confirmación, rechazo y resolución.
type Service struct {
	matches  Repository
	reports  reports.Repository
	notifier Notifier
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewService(matchRepo Repository, reportsRepo reports.Repository, notifier Notifier, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		matches:  matchRepo,
		reports:  reportsRepo,
		notifier: notifier,
		log:      log.With(map[string]any{"component": "match_lifecycle"}),
		metrics:  m,
		now:      time.Now,
	}
}

// parties es quién puede operar sobre un match.
type parties struct {
	lost  reports.LostReport
	found reports.FoundReport
}

func (p parties) isOwner(userID string) bool  { return p.lost.OwnerID == userID }
func (p parties) isFinder(userID string) bool { return p.found.ReporterID == userID }

func (s *Service) load(ctx context.Context, userID, id string) (Match, parties, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Match{}, parties{}, ErrInvalidInput
	}
	m, err := s.matches.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Match{}, parties{}, err
	}

	var p parties
	if p.lost, err = s.reports.GetLost(ctx, m.LostReportID); err != nil {
		return Match{}, parties{}, fmt.Errorf("load lost report: %w", err)
	}
	if p.found, err = s.reports.GetFound(ctx, m.FoundReportID); err != nil {
		return Match{}, parties{}, fmt.Errorf("load found report: %w", err)
	}
	if !p.isOwner(userID) && !p.isFinder(userID) {
		return Match{}, parties{}, ErrNotParty
	}
	return m, p, nil
}

// Get: solo participantes.
func (s *Service) Get(ctx context.Context, userID, id string) (Match, error) {
	m, _, err := s.load(ctx, userID, id)
	return m, err
}

// List devuelve los matches del usuario (score desc, created_at desc).
func (s *Service) List(ctx context.Context, userID string) ([]Match, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.matches.ListByParty(ctx, userID)
}

// Confirm marca la confirmación del llamador (dueño, finder o ambas si es la misma persona).
// Cuando quedan las dos y el match estaba pendiente pasa a confirmed y se notifica una sola vez.
func (s *Service) Confirm(ctx context.Context, userID, id string) (Match, error) {
	userID = strings.TrimSpace(userID)
	cur, p, err := s.load(ctx, userID, id)
	if err != nil {
		return Match{}, err
	}

	becameConfirmed := false
	updated, err := s.matches.Mutate(ctx, cur.ID, func(m *Match) error {
		becameConfirmed = false
		if m.Status.IsTerminal() {
			return ErrBadState
		}
		if p.isOwner(userID) {
			m.ConfirmedByLostOwner = true
		}
		if p.isFinder(userID) {
			m.ConfirmedByFinder = true
		}
		if m.IsConfirmed() && m.Status == StatusPending {
			m.Status = StatusConfirmed
			becameConfirmed = true
		}
		m.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return Match{}, err
	}

	if becameConfirmed {
		s.metrics.Transition(string(StatusConfirmed))
		s.notifyConfirmed(ctx, updated, p)
	}
	return updated, nil
}

// Reject: cualquiera de las partes, desde un estado no final. No notifica.
func (s *Service) Reject(ctx context.Context, userID, id string) (Match, error) {
	cur, _, err := s.load(ctx, userID, id)
	if err != nil {
		return Match{}, err
	}

	updated, err := s.matches.Mutate(ctx, cur.ID, func(m *Match) error {
		if !CanTransition(m.Status, StatusRejected) {
			return ErrBadState
		}
		m.Status = StatusRejected
		m.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return Match{}, err
	}
	s.metrics.Transition(string(StatusRejected))
	return updated, nil
}

// Resolve cierra el match confirmado por ambos; el repo resuelve también los dos reportes.
func (s *Service) Resolve(ctx context.Context, userID, id string) (Match, error) {
	cur, _, err := s.load(ctx, userID, id)
	if err != nil {
		return Match{}, err
	}

	updated, err := s.matches.Mutate(ctx, cur.ID, func(m *Match) error {
		if m.Status.IsTerminal() {
			return ErrBadState
		}
		if !m.IsConfirmed() {
			return ErrNotConfirmed
		}
		now := s.now()
		m.Status = StatusResolved
		m.ResolvedAt = &now
		m.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Match{}, err
	}

	s.metrics.Transition(string(StatusResolved))
	s.log.Info("match resolved", map[string]any{
		"match_id": updated.ID, "lost_report_id": updated.LostReportID, "found_report_id": updated.FoundReportID,
	})
	return updated, nil
}

func (s *Service) notifyConfirmed(ctx context.Context, m Match, p parties) {
	if s.notifier == nil {
		return
	}
	name := petName(p.lost)
	msgs := []notifications.EmitInput{
		{
			MatchID: m.ID,
			UserID:  p.lost.OwnerID,
			Type:    notifications.TypeMatchConfirmed,
			Title:   "Match Confirmed!",
			Message: fmt.Sprintf("Your lost pet %q has been confirmed as found!", name),
		},
		{
			MatchID: m.ID,
			UserID:  p.found.ReporterID,
			Type:    notifications.TypeMatchConfirmed,
			Title:   "Match Confirmed!",
			Message: fmt.Sprintf("The owner has confirmed that you found their pet %q!", name),
		},
	}
	for _, in := range msgs {
		if _, err := s.notifier.Emit(ctx, in); err != nil {
			s.log.Warn("notification failed", map[string]any{"match_id": m.ID, "user_id": in.UserID, "error": err})
		}
	}
}

// IsNotFound agrupa los not found de matches y reportes para el handler.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, reports.ErrNotFound)
}
