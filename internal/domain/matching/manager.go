package matching

import (
	"context"
	"time"

	"pet-lost-found/internal/domain/reports"

	"github.com/google/uuid"
)

// Manager crea o re-puntúa el match de un par.
type Manager struct {
	repo Repository
	now  func() time.Time
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo, now: time.Now}
}

// CreateMatch recalcula el score del par. Bajo minScore no hace nada (nil, false, nil).
// Si el par ya tenía match solo se actualizan score y reasons; status y confirmaciones se conservan.
func (m *Manager) CreateMatch(ctx context.Context, lost reports.LostReport, found reports.FoundReport, minScore float64) (*Match, bool, error) {
	res := Score(lost, found)
	if res.Score < minScore {
		return nil, false, nil
	}

	now := m.now()
	saved, created, err := m.repo.Upsert(ctx, Match{
		ID:            uuid.NewString(),
		LostReportID:  lost.ID,
		FoundReportID: found.ID,
		Score:         res.Score,
		Reasons:       res.Reasons,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, false, err
	}
	return &saved, created, nil
}
