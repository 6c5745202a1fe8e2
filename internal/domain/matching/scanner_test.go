package matching_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pet-lost-found/internal/adapters/storage/memory"
	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_CapsNewMatchesPerLostReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.DefaultPolicy())

	lost := f.addLost(t, goldenLost("owner-1"))
	for i := 0; i < 7; i++ {
		f.addFound(t, goldenFound(fmt.Sprintf("finder-%d", i)))
	}

	sum, err := matching.NewScanner(f.engine, f.matches, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Scanned)
	assert.Equal(t, matching.DefaultScanTopN, sum.Created)
	assert.Zero(t, sum.Failed)
	assert.False(t, sum.Locked)

	items, err := f.matches.ListByParty(ctx, lost.OwnerID)
	require.NoError(t, err)
	assert.Len(t, items, matching.DefaultScanTopN)

	// el lost quedó matched: la siguiente pasada no lo vuelve a procesar
	sum, err = matching.NewScanner(f.engine, f.matches, nil).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.Scanned)
	assert.Zero(t, sum.Created)
}

func TestScanner_SkipsWhenLockIsHeld(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.DefaultPolicy())
	f.addLost(t, goldenLost("owner-1"))
	f.addFound(t, goldenFound("finder-1"))

	locker := memory.NewLocker()
	release, ok, err := locker.TryLock(ctx, matching.ScanLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	sum, err := matching.NewScanner(f.engine, f.matches, locker).Run(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Locked)
	assert.Zero(t, sum.Scanned)

	require.NoError(t, release(ctx))

	sum, err = matching.NewScanner(f.engine, f.matches, locker).Run(ctx)
	require.NoError(t, err)
	assert.False(t, sum.Locked)
	assert.Equal(t, 1, sum.Created)
}

// flakyReports falla al buscar candidatos de una especie.
type flakyReports struct {
	*memory.ReportsRepo
	failSpecies pets.Species
}

func (r flakyReports) ListActiveFoundBySpecies(ctx context.Context, species pets.Species, excludeReporterID string) ([]reports.FoundReport, error) {
	if species == r.failSpecies {
		return nil, errors.New("boom")
	}
	return r.ReportsRepo.ListActiveFoundBySpecies(ctx, species, excludeReporterID)
}

func TestScanner_OneFailureDoesNotStopTheRun(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWith(t, matching.DefaultPolicy(), func(r *memory.ReportsRepo) reports.Repository {
		return flakyReports{ReportsRepo: r, failSpecies: pets.SpeciesCat}
	})

	cat := goldenLost("owner-2")
	cat.species = pets.SpeciesCat
	f.addLost(t, cat)
	f.addLost(t, goldenLost("owner-1"))
	f.addFound(t, goldenFound("finder-1"))

	sum, err := matching.NewScanner(f.engine, f.matches, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Scanned)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Created)
}

func TestScanner_StopsOnCancelledContext(t *testing.T) {
	f := newFixture(t, matching.DefaultPolicy())
	f.addLost(t, goldenLost("owner-1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := matching.NewScanner(f.engine, f.matches, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Scanned)
	assert.Zero(t, sum.Created)
}
