package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPair(t *testing.T) (*ReportsRepo, *MatchRepo) {
	t.Helper()
	ctx := context.Background()

	petRepo := NewPetRepo()
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "pet-1", OwnerUserID: "owner-1", Name: "Max", Species: pets.SpeciesDog}))

	rr := NewReportsRepo(petRepo)
	require.NoError(t, rr.CreateLost(ctx, reports.LostReport{ID: "lost-1", OwnerID: "owner-1", PetID: "pet-1", Status: reports.StatusActive}))
	require.NoError(t, rr.CreateFound(ctx, reports.FoundReport{ID: "found-1", ReporterID: "finder-1", Species: pets.SpeciesDog, Status: reports.StatusActive}))

	return rr, NewMatchRepo(rr)
}

func newMatch(id string, score float64) matching.Match {
	now := time.Now()
	return matching.Match{
		ID: id, LostReportID: "lost-1", FoundReportID: "found-1",
		Score: score, Reasons: []string{"Pet type matches"},
		Status: matching.StatusPending, CreatedAt: now, UpdatedAt: now,
	}
}

func TestMatchRepo_UpsertIsUniquePerPair(t *testing.T) {
	ctx := context.Background()
	_, repo := seedPair(t)

	first, created, err := repo.Upsert(ctx, newMatch("m-1", 60))
	require.NoError(t, err)
	assert.True(t, created)

	_, err = repo.Mutate(ctx, first.ID, func(m *matching.Match) error {
		m.ConfirmedByFinder = true
		m.Status = matching.StatusPending
		return nil
	})
	require.NoError(t, err)

	second, created, err := repo.Upsert(ctx, newMatch("m-2", 75))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "m-1", second.ID)
	assert.Equal(t, 75.0, second.Score)
	assert.True(t, second.ConfirmedByFinder)

	exists, err := repo.Exists(ctx, "lost-1", "found-1")
	require.NoError(t, err)
	assert.True(t, exists)

	ids, err := repo.MatchedFoundIDs(ctx, "lost-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"found-1": {}}, ids)
}

func TestMatchRepo_ConcurrentUpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	_, repo := seedPair(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, isNew, err := repo.Upsert(ctx, newMatch(string(rune('a'+i)), 60))
			if err == nil && isNew {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	items, err := repo.ListByParty(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMatchRepo_MutateResolveCascades(t *testing.T) {
	ctx := context.Background()
	rr, repo := seedPair(t)

	m, _, err := repo.Upsert(ctx, newMatch("m-1", 90))
	require.NoError(t, err)

	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	_, err = repo.Mutate(ctx, m.ID, func(m *matching.Match) error {
		m.Status = matching.StatusResolved
		m.ResolvedAt = &at
		return nil
	})
	require.NoError(t, err)

	lost, err := rr.GetLost(ctx, "lost-1")
	require.NoError(t, err)
	assert.Equal(t, reports.StatusResolved, lost.Status)
	require.NotNil(t, lost.ResolvedAt)
	assert.True(t, lost.ResolvedAt.Equal(at))

	found, err := rr.GetFound(ctx, "found-1")
	require.NoError(t, err)
	assert.Equal(t, reports.StatusResolved, found.Status)
}

func TestMatchRepo_MutateErrorLeavesMatchUntouched(t *testing.T) {
	ctx := context.Background()
	_, repo := seedPair(t)

	m, _, err := repo.Upsert(ctx, newMatch("m-1", 90))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.Mutate(ctx, m.ID, func(m *matching.Match) error {
		m.ConfirmedByLostOwner = true
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, got.ConfirmedByLostOwner)

	_, err = repo.Mutate(ctx, "missing", func(*matching.Match) error { return nil })
	assert.ErrorIs(t, err, matching.ErrNotFound)
}

func TestLocker_TryLock(t *testing.T) {
	ctx := context.Background()
	l := NewLocker()

	release, ok, err := l.TryLock(ctx, "scan", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx, "scan", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, release(ctx))
	_, ok, err = l.TryLock(ctx, "scan", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocker_ExpiredLockCanBeTaken(t *testing.T) {
	ctx := context.Background()
	l := NewLocker()
	now := time.Now()
	l.now = func() time.Time { return now }

	stale, ok, _ := l.TryLock(ctx, "scan", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = l.TryLock(ctx, "scan", time.Minute)
	require.True(t, ok)

	// liberar el lock vencido no borra el nuevo
	require.NoError(t, stale(ctx))
	_, ok, _ = l.TryLock(ctx, "scan", time.Minute)
	assert.False(t, ok)
}

func TestReportsRepo_SetStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	rr, _ := seedPair(t)
	at := time.Now()

	require.NoError(t, rr.SetLostStatus(ctx, "lost-1", reports.StatusCancelled, at))

	// cancelado es final: no vuelve a matched
	err := rr.SetLostStatus(ctx, "lost-1", reports.StatusMatched, at)
	assert.ErrorIs(t, err, reports.ErrStatusChanged)
	assert.ErrorIs(t, err, reports.ErrBadState)

	lost, err := rr.GetLost(ctx, "lost-1")
	require.NoError(t, err)
	assert.Equal(t, reports.StatusCancelled, lost.Status)

	// mismo estado: no-op
	require.NoError(t, rr.SetFoundStatus(ctx, "found-1", reports.StatusMatched, at))
	require.NoError(t, rr.SetFoundStatus(ctx, "found-1", reports.StatusMatched, at.Add(time.Hour)))
	found, err := rr.GetFound(ctx, "found-1")
	require.NoError(t, err)
	assert.True(t, found.UpdatedAt.Equal(at))

	assert.ErrorIs(t, rr.SetFoundStatus(ctx, "missing", reports.StatusMatched, at), reports.ErrNotFound)
}

func TestMatchRepo_ResolveKeepsCancelledReport(t *testing.T) {
	ctx := context.Background()
	rr, repo := seedPair(t)

	m, _, err := repo.Upsert(ctx, newMatch("m-1", 90))
	require.NoError(t, err)
	require.NoError(t, rr.SetLostStatus(ctx, "lost-1", reports.StatusCancelled, time.Now()))

	got, err := repo.Mutate(ctx, m.ID, func(m *matching.Match) error {
		m.Status = matching.StatusResolved
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, matching.StatusResolved, got.Status)

	lost, err := rr.GetLost(ctx, "lost-1")
	require.NoError(t, err)
	assert.Equal(t, reports.StatusCancelled, lost.Status)

	found, err := rr.GetFound(ctx, "found-1")
	require.NoError(t, err)
	assert.Equal(t, reports.StatusResolved, found.Status)
}
