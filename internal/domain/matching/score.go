package matching

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-lost-found/internal/domain/reports"
)

// Pesos del score. Suman 100.
const (
	weightType     = 30.0
	weightBreed    = 20.0
	weightColor    = 20.0
	weightSize     = 10.0
	weightLocation = 10.0
	weightDate     = 10.0

	colorPerWord = 5.0
)

const (
	reasonTypeMatch        = "Pet type matches"
	reasonTypeMismatch     = "Pet type does not match"
	reasonBreedMatch       = "Breed matches"
	reasonBreedPartial     = "Breed partially matches"
	reasonSizeMatch        = "Size matches"
	reasonLocationClose    = "Location is close"
	reasonLocationSomewhat = "Location is somewhat close"
)

// Result es el score de un par con sus motivos en orden de evaluación.
type Result struct {
	Score   float64
	Reasons []string
}

// Score compara un lost report contra un found report.
// Pura y determinística: no hace I/O ni depende del reloj.
func Score(lost reports.LostReport, found reports.FoundReport) Result {
	if lost.Pet == nil || lost.Pet.Species != found.Species {
		return Result{Score: 0, Reasons: []string{reasonTypeMismatch}}
	}

	score := weightType
	reasons := []string{reasonTypeMatch}

	// raza
	lb := strings.ToLower(strings.TrimSpace(lost.Pet.Breed))
	fb := strings.ToLower(strings.TrimSpace(found.Breed))
	if lb != "" && fb != "" {
		switch {
		case lb == fb:
			score += weightBreed
			reasons = append(reasons, reasonBreedMatch)
		case strings.Contains(lb, fb) || strings.Contains(fb, lb):
			score += weightBreed / 2
			reasons = append(reasons, reasonBreedPartial)
		}
	}

	// color
	if common := commonWords(lost.Color, found.Color); len(common) > 0 {
		pts := colorPerWord * float64(len(common))
		if pts > weightColor {
			pts = weightColor
		}
		score += pts
		reasons = append(reasons, "Color matches: "+strings.Join(common, ", "))
	}

	// tamaño
	if lost.Size != "" && found.Size != "" && lost.Size == found.Size {
		score += weightSize
		reasons = append(reasons, reasonSizeMatch)
	}

	// ubicación: solo tokens compartidos, sin geocoding
	switch n := len(commonWords(lost.LastSeenLocation, found.LocationFound)); {
	case n >= 2:
		score += weightLocation
		reasons = append(reasons, reasonLocationClose)
	case n == 1:
		score += weightLocation / 2
		reasons = append(reasons, reasonLocationSomewhat)
	}

	// fecha
	if !lost.LastSeenDate.IsZero() && !found.DateFound.IsZero() {
		days := calendarDays(lost.LastSeenDate, found.DateFound)
		switch {
		case days >= 0 && days <= 30:
			score += weightDate
			reasons = append(reasons, fmt.Sprintf("Found %d days after being lost", days))
		case days > 30 && days <= 60:
			score += weightDate / 2
			reasons = append(reasons, fmt.Sprintf("Found %d days after being lost", days))
		}
	}

	return Result{Score: score, Reasons: reasons}
}

// commonWords devuelve la intersección (ordenada) de palabras en minúscula.
func commonWords(a, b string) []string {
	left := wordSet(a)
	if len(left) == 0 {
		return nil
	}
	var out []string
	for w := range wordSet(b) {
		if _, ok := left[w]; ok {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// calendarDays cuenta días de calendario entre fechas, ignorando la hora.
func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
