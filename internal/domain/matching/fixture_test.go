package matching_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-lost-found/internal/adapters/storage/memory"
	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/notifications"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifications.EmitInput
}

func (n *recordingNotifier) Emit(ctx context.Context, in notifications.EmitInput) (notifications.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, in)
	return notifications.Notification{ID: uuid.NewString(), MatchID: in.MatchID, UserID: in.UserID, Type: in.Type}, nil
}

func (n *recordingNotifier) ofType(t notifications.Type) []notifications.EmitInput {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notifications.EmitInput
	for _, in := range n.sent {
		if in.Type == t {
			out = append(out, in)
		}
	}
	return out
}

type fixture struct {
	pets     pets.Repository
	reports  *memory.ReportsRepo
	matches  *memory.MatchRepo
	notifier *recordingNotifier
	engine   *matching.Engine
	svc      *matching.Service
}

func newFixture(t *testing.T, policy matching.Policy) *fixture {
	t.Helper()
	return newFixtureWith(t, policy, nil)
}

// newFixtureWith permite envolver el repo de reportes (p.ej. para inyectar fallas).
func newFixtureWith(t *testing.T, policy matching.Policy, wrap func(*memory.ReportsRepo) reports.Repository) *fixture {
	t.Helper()

	petRepo := memory.NewPetRepo()
	reportsRepo := memory.NewReportsRepo(petRepo)
	matchRepo := memory.NewMatchRepo(reportsRepo)
	notifier := &recordingNotifier{}

	var repo reports.Repository = reportsRepo
	if wrap != nil {
		repo = wrap(reportsRepo)
	}

	return &fixture{
		pets:     petRepo,
		reports:  reportsRepo,
		matches:  matchRepo,
		notifier: notifier,
		engine:   matching.NewEngine(repo, matchRepo, matching.EngineOptions{Policy: policy, Notifier: notifier}),
		svc:      matching.NewService(matchRepo, repo, notifier, nil, nil),
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

type lostSeed struct {
	owner    string
	species  pets.Species
	breed    string
	color    string
	location string
	date     string
}

func (f *fixture) addLost(t *testing.T, s lostSeed) reports.LostReport {
	t.Helper()
	ctx := context.Background()

	pet := pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: s.owner,
		Name:        "Max",
		Species:     s.species,
		Breed:       s.breed,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, f.pets.Create(ctx, pet))

	lr := reports.LostReport{
		ID:               uuid.NewString(),
		OwnerID:          s.owner,
		PetID:            pet.ID,
		LastSeenLocation: s.location,
		LastSeenDate:     date(s.date),
		Color:            s.color,
		Size:             reports.SizeLarge,
		Status:           reports.StatusActive,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, f.reports.CreateLost(ctx, lr))

	got, err := f.reports.GetLost(ctx, lr.ID)
	require.NoError(t, err)
	return got
}

type foundSeed struct {
	reporter string
	species  pets.Species
	breed    string
	color    string
	location string
	date     string
}

func (f *fixture) addFound(t *testing.T, s foundSeed) reports.FoundReport {
	t.Helper()

	fr := reports.FoundReport{
		ID:            uuid.NewString(),
		ReporterID:    s.reporter,
		Species:       s.species,
		Breed:         s.breed,
		Color:         s.color,
		Size:          reports.SizeLarge,
		Description:   "found it",
		LocationFound: s.location,
		DateFound:     date(s.date),
		ContactPhone:  "555-0100",
		ContactEmail:  "finder@example.com",
		Status:        reports.StatusActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, f.reports.CreateFound(context.Background(), fr))
	return fr
}

// Par típico: 90 puntos.
func goldenLost(owner string) lostSeed {
	return lostSeed{
		owner: owner, species: pets.SpeciesDog, breed: "Golden Retriever",
		color: "golden brown", location: "Central Park North", date: "2025-03-01",
	}
}

func goldenFound(reporter string) foundSeed {
	return foundSeed{
		reporter: reporter, species: pets.SpeciesDog, breed: "Golden Retriever",
		color: "golden brown", location: "Central Park South", date: "2025-03-04",
	}
}
