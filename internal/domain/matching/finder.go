package matching

import (
	"context"
	"sort"

	"pet-lost-found/internal/domain/reports"
)

// Candidate es un reporte de la contraparte con su score.
type Candidate struct {
	Lost  reports.LostReport
	Found reports.FoundReport
	Result
}

// Finder busca contrapartes activas de la misma especie para un reporte.
type Finder struct {
	reports reports.Repository
	matches Repository
}

func NewFinder(reportsRepo reports.Repository, matchRepo Repository) *Finder {
	return &Finder{reports: reportsRepo, matches: matchRepo}
}

// FindForLost devuelve found reports con score >= minScore, de mayor a menor.
// Excluye los del propio dueño y los pares que ya tienen match.
func (f *Finder) FindForLost(ctx context.Context, lost reports.LostReport, minScore float64) ([]Candidate, error) {
	if lost.Pet == nil {
		return nil, nil
	}

	found, err := f.reports.ListActiveFoundBySpecies(ctx, lost.Pet.Species, lost.OwnerID)
	if err != nil {
		return nil, err
	}
	linked, err := f.matches.MatchedFoundIDs(ctx, lost.ID)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0)
	for _, fr := range found {
		if fr.ReporterID == lost.OwnerID {
			continue
		}
		if _, ok := linked[fr.ID]; ok {
			continue
		}
		res := Score(lost, fr)
		if res.Score < minScore {
			continue
		}
		out = append(out, Candidate{Lost: lost, Found: fr, Result: res})
	}

	sortCandidates(out)
	return out, nil
}

// FindForFound es el espejo de FindForLost.
func (f *Finder) FindForFound(ctx context.Context, found reports.FoundReport, minScore float64) ([]Candidate, error) {
	lost, err := f.reports.ListActiveLostBySpecies(ctx, found.Species, found.ReporterID)
	if err != nil {
		return nil, err
	}
	linked, err := f.matches.MatchedLostIDs(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0)
	for _, lr := range lost {
		if lr.OwnerID == found.ReporterID {
			continue
		}
		if _, ok := linked[lr.ID]; ok {
			continue
		}
		res := Score(lr, found)
		if res.Score < minScore {
			continue
		}
		out = append(out, Candidate{Lost: lr, Found: found, Result: res})
	}

	sortCandidates(out)
	return out, nil
}

// sortCandidates: score desc; empates conservan el orden del store.
func sortCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Score > cs[j].Score
	})
}
