package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/reports"
)

type pairKey struct {
	lost  string
	found string
}

// MatchRepo guarda matches con índice único por par.
// Resolver un match resuelve los dos reportes en el ReportsRepo asociado.
type MatchRepo struct {
	mu     sync.Mutex
	byID   map[string]matching.Match
	byPair map[pairKey]string

	reports *ReportsRepo
}

var _ matching.Repository = (*MatchRepo)(nil)

func NewMatchRepo(reportsRepo *ReportsRepo) *MatchRepo {
	return &MatchRepo{
		byID:    make(map[string]matching.Match),
		byPair:  make(map[pairKey]string),
		reports: reportsRepo,
	}
}

func (r *MatchRepo) Upsert(ctx context.Context, m matching.Match) (matching.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return matching.Match{}, false, errors.New("match id required")
	}

	key := pairKey{m.LostReportID, m.FoundReportID}
	if id, ok := r.byPair[key]; ok {
		existing := r.byID[id]
		existing.Score = m.Score
		existing.Reasons = copyReasons(m.Reasons)
		existing.UpdatedAt = m.UpdatedAt
		r.byID[id] = existing
		return cloneMatch(existing), false, nil
	}

	m.Reasons = copyReasons(m.Reasons)
	r.byID[m.ID] = m
	r.byPair[key] = m.ID
	return cloneMatch(m), true, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, id string) (matching.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return matching.Match{}, matching.ErrNotFound
	}
	return cloneMatch(m), nil
}

func (r *MatchRepo) Exists(ctx context.Context, lostReportID, foundReportID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.byPair[pairKey{lostReportID, foundReportID}]
	return ok, nil
}

func (r *MatchRepo) ListByParty(ctx context.Context, userID string) ([]matching.Match, error) {
	r.mu.Lock()
	all := make([]matching.Match, 0, len(r.byID))
	for _, m := range r.byID {
		all = append(all, cloneMatch(m))
	}
	r.mu.Unlock()

	out := make([]matching.Match, 0)
	for _, m := range all {
		if r.involves(ctx, m, userID) {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepo) MatchedFoundIDs(ctx context.Context, lostReportID string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]struct{})
	for k := range r.byPair {
		if k.lost == lostReportID {
			out[k.found] = struct{}{}
		}
	}
	return out, nil
}

func (r *MatchRepo) MatchedLostIDs(ctx context.Context, foundReportID string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]struct{})
	for k := range r.byPair {
		if k.found == foundReportID {
			out[k.lost] = struct{}{}
		}
	}
	return out, nil
}

func (r *MatchRepo) Mutate(ctx context.Context, id string, fn matching.MutateFunc) (matching.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return matching.Match{}, matching.ErrNotFound
	}

	next := cloneMatch(cur)
	if err := fn(&next); err != nil {
		return matching.Match{}, err
	}
	// el par no se puede cambiar
	next.ID = cur.ID
	next.LostReportID = cur.LostReportID
	next.FoundReportID = cur.FoundReportID

	if next.Status == matching.StatusResolved && cur.Status != matching.StatusResolved && r.reports != nil {
		at := next.UpdatedAt
		if next.ResolvedAt != nil {
			at = *next.ResolvedAt
		}
		// un reporte ya cancelado queda como está
		if err := r.reports.SetLostStatus(ctx, next.LostReportID, reports.StatusResolved, at); err != nil && !errors.Is(err, reports.ErrBadState) {
			return matching.Match{}, err
		}
		if err := r.reports.SetFoundStatus(ctx, next.FoundReportID, reports.StatusResolved, at); err != nil && !errors.Is(err, reports.ErrBadState) {
			return matching.Match{}, err
		}
	}

	r.byID[id] = next
	return cloneMatch(next), nil
}

func (r *MatchRepo) involves(ctx context.Context, m matching.Match, userID string) bool {
	if r.reports == nil {
		return false
	}
	if lr, err := r.reports.GetLost(ctx, m.LostReportID); err == nil && lr.OwnerID == userID {
		return true
	}
	if fr, err := r.reports.GetFound(ctx, m.FoundReportID); err == nil && fr.ReporterID == userID {
		return true
	}
	return false
}

func cloneMatch(m matching.Match) matching.Match {
	m.Reasons = copyReasons(m.Reasons)
	if m.ResolvedAt != nil {
		t := *m.ResolvedAt
		m.ResolvedAt = &t
	}
	return m
}

func copyReasons(rs []string) []string {
	out := make([]string, len(rs))
	copy(out, rs)
	return out
}
