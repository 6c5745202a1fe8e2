package matching

import (
	"testing"
	"time"

	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func goldenLost() reports.LostReport {
	return reports.LostReport{
		ID:      "lost-1",
		OwnerID: "owner-1",
		Pet: &reports.PetProfile{
			ID: "pet-1", Name: "Max", Species: pets.SpeciesDog, Breed: "Golden Retriever",
		},
		LastSeenLocation: "Central Park North",
		LastSeenDate:     day("2025-03-01"),
		Color:            "golden brown",
		Size:             reports.SizeLarge,
		Status:           reports.StatusActive,
	}
}

func goldenFound() reports.FoundReport {
	return reports.FoundReport{
		ID:            "found-1",
		ReporterID:    "finder-1",
		Species:       pets.SpeciesDog,
		Breed:         "golden retriever",
		Color:         "Brown Golden",
		Size:          reports.SizeLarge,
		LocationFound: "Central Park South",
		DateFound:     day("2025-03-04"),
		Status:        reports.StatusActive,
	}
}

func TestScore_TypicalMatch(t *testing.T) {
	res := Score(goldenLost(), goldenFound())

	assert.Equal(t, 90.0, res.Score)
	assert.Equal(t, []string{
		"Pet type matches",
		"Breed matches",
		"Color matches: brown, golden",
		"Size matches",
		"Location is close",
		"Found 3 days after being lost",
	}, res.Reasons)
}

func TestScore_PerfectMatchIsCapped(t *testing.T) {
	lost := goldenLost()
	found := goldenFound()
	lost.Color = "golden brown white black"
	found.Color = "black white brown golden cream"

	res := Score(lost, found)
	assert.Equal(t, 100.0, res.Score)
	assert.Contains(t, res.Reasons, "Color matches: black, brown, golden, white")
}

func TestScore_TypeMismatchShortCircuits(t *testing.T) {
	found := goldenFound()
	found.Species = pets.SpeciesCat

	res := Score(goldenLost(), found)
	assert.Zero(t, res.Score)
	assert.Equal(t, []string{"Pet type does not match"}, res.Reasons)
}

func TestScore_MissingPetIsMismatch(t *testing.T) {
	lost := goldenLost()
	lost.Pet = nil

	res := Score(lost, goldenFound())
	assert.Zero(t, res.Score)
}

func TestScore_PartialBreedAndLocation(t *testing.T) {
	lost := goldenLost()
	found := goldenFound()
	found.Breed = "Golden"
	found.Color = ""
	found.Size = ""
	found.LocationFound = "Park Avenue"
	found.DateFound = time.Time{}

	res := Score(lost, found)
	assert.Equal(t, 30.0+10+5, res.Score)
	assert.Equal(t, []string{"Pet type matches", "Breed partially matches", "Location is somewhat close"}, res.Reasons)
}

func TestScore_DateBands(t *testing.T) {
	cases := []struct {
		found string
		want  float64
	}{
		{"2025-03-01", 10}, // mismo día
		{"2025-03-31", 10}, // 30 días
		{"2025-04-01", 5},  // 31 días
		{"2025-04-30", 5},  // 60 días
		{"2025-05-01", 0},  // 61 días
		{"2025-02-27", 0},  // encontrado antes de perderse
	}

	for _, tc := range cases {
		lost := reports.LostReport{
			Pet:          &reports.PetProfile{Species: pets.SpeciesDog},
			LastSeenDate: day("2025-03-01"),
		}
		found := reports.FoundReport{Species: pets.SpeciesDog, DateFound: day(tc.found)}

		res := Score(lost, found)
		assert.Equal(t, 30+tc.want, res.Score, "found %s", tc.found)
	}
}

func TestScore_IsDeterministic(t *testing.T) {
	a := Score(goldenLost(), goldenFound())
	for i := 0; i < 20; i++ {
		assert.Equal(t, a, Score(goldenLost(), goldenFound()))
	}
}

func TestCalendarDays_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, calendarDays(from, to))
}
