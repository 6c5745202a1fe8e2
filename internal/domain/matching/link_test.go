package matching_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-lost-found/internal/adapters/storage/memory"
	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/notifications"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cancelDuringSearch cancela un lost report mientras el finder busca candidatos.
type cancelDuringSearch struct {
	*memory.ReportsRepo
	lostID string
}

func (r *cancelDuringSearch) ListActiveFoundBySpecies(ctx context.Context, species pets.Species, excludeReporterID string) ([]reports.FoundReport, error) {
	out, err := r.ReportsRepo.ListActiveFoundBySpecies(ctx, species, excludeReporterID)
	if r.lostID != "" {
		if cerr := r.ReportsRepo.SetLostStatus(ctx, r.lostID, reports.StatusCancelled, time.Now()); cerr != nil {
			return nil, cerr
		}
	}
	return out, err
}

func TestEngine_ScanDoesNotReviveReportCancelledMeanwhile(t *testing.T) {
	ctx := context.Background()
	var wrapped *cancelDuringSearch
	f := newFixtureWith(t, matching.DefaultPolicy(), func(r *memory.ReportsRepo) reports.Repository {
		wrapped = &cancelDuringSearch{ReportsRepo: r}
		return wrapped
	})

	lost := f.addLost(t, goldenLost("owner-1"))
	f.addFound(t, goldenFound("finder-1"))
	wrapped.lostID = lost.ID

	sum, err := matching.NewScanner(f.engine, f.matches, nil).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.Created)

	got, err := f.reports.GetLost(ctx, lost.ID)
	require.NoError(t, err)
	assert.Equal(t, reports.StatusCancelled, got.Status)

	items, err := f.matches.ListByParty(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, f.notifier.ofType(notifications.TypeMatchFound))
}

// cancelBeforeMark cierra el found report justo antes de que el motor lo marque matched.
type cancelBeforeMark struct {
	*memory.ReportsRepo
}

func (r *cancelBeforeMark) SetFoundStatus(ctx context.Context, id string, status reports.Status, at time.Time) error {
	if status == reports.StatusMatched {
		if err := r.ReportsRepo.SetFoundStatus(ctx, id, reports.StatusCancelled, at); err != nil {
			return err
		}
	}
	return r.ReportsRepo.SetFoundStatus(ctx, id, status, at)
}

func TestEngine_WithdrawsMatchWhenReportClosesBeforeMark(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWith(t, matching.DefaultPolicy(), func(r *memory.ReportsRepo) reports.Repository {
		return &cancelBeforeMark{ReportsRepo: r}
	})

	f.addLost(t, goldenLost("owner-1"))
	found := f.addFound(t, goldenFound("finder-1"))

	f.engine.OnFoundReported(ctx, found)

	got, err := f.reports.GetFound(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, reports.StatusCancelled, got.Status)

	items, err := f.matches.ListByParty(ctx, "finder-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, matching.StatusRejected, items[0].Status)
	assert.Empty(t, f.notifier.ofType(notifications.TypeMatchFound))
}

// failFoundMarkOnce falla la primera escritura de status del found report.
type failFoundMarkOnce struct {
	*memory.ReportsRepo
	once sync.Once
}

func (r *failFoundMarkOnce) SetFoundStatus(ctx context.Context, id string, status reports.Status, at time.Time) error {
	var fail bool
	r.once.Do(func() { fail = true })
	if fail {
		return errors.New("connection reset")
	}
	return r.ReportsRepo.SetFoundStatus(ctx, id, status, at)
}

func TestEngine_StatusWriteFailureStillNotifies(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWith(t, matching.DefaultPolicy(), func(r *memory.ReportsRepo) reports.Repository {
		return &failFoundMarkOnce{ReportsRepo: r}
	})

	lost := f.addLost(t, goldenLost("owner-1"))
	found := f.addFound(t, goldenFound("finder-1"))

	f.engine.OnFoundReported(ctx, found)

	items, err := f.matches.ListByParty(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, matching.StatusPending, items[0].Status)
	assert.Len(t, f.notifier.ofType(notifications.TypeMatchFound), 2)

	gotLost, err := f.reports.GetLost(ctx, lost.ID)
	require.NoError(t, err)
	assert.Equal(t, reports.StatusMatched, gotLost.Status)

	gotFound, err := f.reports.GetFound(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, reports.StatusActive, gotFound.Status)

	// otro trigger no duplica el match ni las notificaciones
	f.engine.OnLostReported(ctx, gotLost)
	f.engine.OnFoundReported(ctx, found)

	assert.Len(t, f.notifier.ofType(notifications.TypeMatchFound), 2)
	items, err = f.matches.ListByParty(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
