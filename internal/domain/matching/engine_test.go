package matching_test

import (
	"context"
	"testing"

	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/notifications"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_OnFoundReported_CreatesMatchAndNotifiesBothParties(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.DefaultPolicy())

	lost := f.addLost(t, goldenLost("owner-1"))
	found := f.addFound(t, goldenFound("finder-1"))

	f.engine.OnFoundReported(ctx, found)

	items, err := f.matches.ListByParty(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	m := items[0]
	assert.Equal(t, lost.ID, m.LostReportID)
	assert.Equal(t, found.ID, m.FoundReportID)
	assert.Equal(t, 90.0, m.Score)
	assert.Equal(t, matching.StatusPending, m.Status)
	assert.False(t, m.ConfirmedByLostOwner)
	assert.False(t, m.ConfirmedByFinder)

	gotLost, err := f.reports.GetLost(ctx, lost.ID)
	require.NoError(t, err)
	assert.Equal(t, reports.StatusMatched, gotLost.Status)

	gotFound, err := f.reports.GetFound(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, reports.StatusMatched, gotFound.Status)

	sent := f.notifier.ofType(notifications.TypeMatchFound)
	require.Len(t, sent, 2)
	assert.ElementsMatch(t, []string{"owner-1", "finder-1"}, []string{sent[0].UserID, sent[1].UserID})
	for _, n := range sent {
		assert.Equal(t, m.ID, n.MatchID)
	}
}

func TestEngine_OnLostReported_LinksExistingFoundReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.DefaultPolicy())

	found := f.addFound(t, goldenFound("finder-1"))
	lost := f.addLost(t, goldenLost("owner-1"))

	f.engine.OnLostReported(ctx, lost)

	exists, err := f.matches.Exists(ctx, lost.ID, found.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEngine_IgnoresSelfReportsAndLowScores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.DefaultPolicy())

	f.addLost(t, goldenLost("user-1"))

	// mismo usuario: nunca se empareja consigo mismo
	self := f.addFound(t, goldenFound("user-1"))
	f.engine.OnFoundReported(ctx, self)

	// otra especie: score 0
	cat := goldenFound("finder-1")
	cat.species = pets.SpeciesCat
	f.engine.OnFoundReported(ctx, f.addFound(t, cat))

	// misma especie pero nada más en común: 30 < 50
	weak := foundSeed{reporter: "finder-2", species: pets.SpeciesDog, breed: "Poodle", color: "white", location: "Harbor", date: "2025-09-01"}
	f.engine.OnFoundReported(ctx, f.addFound(t, weak))

	items, err := f.matches.ListByParty(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, f.notifier.ofType(notifications.TypeMatchFound))
}

func TestEngine_RepeatedTriggerDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.DefaultPolicy())

	lost := f.addLost(t, goldenLost("owner-1"))
	found := f.addFound(t, goldenFound("finder-1"))

	f.engine.OnFoundReported(ctx, found)
	f.engine.OnLostReported(ctx, lost)
	f.engine.OnFoundReported(ctx, found)

	items, err := f.matches.ListByParty(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Len(t, f.notifier.ofType(notifications.TypeMatchFound), 2)
}

func TestEngine_TriggerTopNLimitsNewMatches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.Policy{MinScore: 50, ScanTopN: 5, TriggerTopN: 2})

	for _, owner := range []string{"owner-1", "owner-2", "owner-3"} {
		f.addLost(t, goldenLost(owner))
	}
	found := f.addFound(t, goldenFound("finder-1"))

	f.engine.OnFoundReported(ctx, found)

	items, err := f.matches.ListByParty(ctx, "finder-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEngine_CheckOwnLostPet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.DefaultPolicy())

	f.addLost(t, goldenLost("owner-1"))

	draft := reports.FoundReport{
		ReporterID:    "owner-1",
		Species:       pets.SpeciesDog,
		Breed:         "Golden Retriever",
		Color:         "golden brown",
		Size:          reports.SizeLarge,
		LocationFound: "Central Park South",
		DateFound:     date("2025-03-04"),
	}
	assert.ErrorIs(t, f.engine.CheckOwnLostPet(ctx, draft), reports.ErrOwnLostPet)

	// otro usuario puede reportarlo
	draft.ReporterID = "finder-1"
	assert.NoError(t, f.engine.CheckOwnLostPet(ctx, draft))

	// mismo usuario, mascota distinta
	draft.ReporterID = "owner-1"
	draft.Species = pets.SpeciesCat
	assert.NoError(t, f.engine.CheckOwnLostPet(ctx, draft))
}

func TestManager_CreateMatch_UpsertKeepsLifecycleState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, matching.DefaultPolicy())
	mgr := matching.NewManager(f.matches)

	lost := f.addLost(t, goldenLost("owner-1"))
	found := f.addFound(t, goldenFound("finder-1"))

	first, created, err := mgr.CreateMatch(ctx, lost, found, 50)
	require.NoError(t, err)
	require.True(t, created)
	require.NotNil(t, first)

	_, err = f.matches.Mutate(ctx, first.ID, func(m *matching.Match) error {
		m.ConfirmedByLostOwner = true
		return nil
	})
	require.NoError(t, err)

	// el finder actualizó el color: cambia el score, no el estado
	found.Color = "golden"
	second, created, err := mgr.CreateMatch(ctx, lost, found, 50)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 85.0, second.Score)
	assert.True(t, second.ConfirmedByLostOwner)
	assert.Equal(t, matching.StatusPending, second.Status)

	// bajo el umbral no toca nada
	none, created, err := mgr.CreateMatch(ctx, lost, found, 95)
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.False(t, created)
}
