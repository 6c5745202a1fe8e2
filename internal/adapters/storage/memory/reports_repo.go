package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"
)

// ReportsRepo guarda lost y found reports. El perfil de la mascota se resuelve al leer.
type ReportsRepo struct {
	mu sync.RWMutex

	pets pets.Repository

	lost      map[string]reports.LostReport
	lostOrder []string

	found      map[string]reports.FoundReport
	foundOrder []string

	images map[string]reports.Image
}

var (
	_ reports.Repository      = (*ReportsRepo)(nil)
	_ reports.ImageRepository = (*ReportsRepo)(nil)
)

func NewReportsRepo(petRepo pets.Repository) *ReportsRepo {
	return &ReportsRepo{
		pets:   petRepo,
		lost:   make(map[string]reports.LostReport),
		found:  make(map[string]reports.FoundReport),
		images: make(map[string]reports.Image),
	}
}

func (r *ReportsRepo) CreateLost(ctx context.Context, lr reports.LostReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(lr.ID) == "" {
		return errors.New("report id required")
	}
	if _, exists := r.lost[lr.ID]; exists {
		return errors.New("report already exists")
	}
	if lr.Status == reports.StatusActive {
		for _, other := range r.lost {
			if other.PetID == lr.PetID && other.Status == reports.StatusActive {
				return reports.ErrDuplicateActiveLost
			}
		}
	}

	lr.Pet = nil
	r.lost[lr.ID] = lr
	r.lostOrder = append(r.lostOrder, lr.ID)
	return nil
}

func (r *ReportsRepo) CreateFound(ctx context.Context, fr reports.FoundReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(fr.ID) == "" {
		return errors.New("report id required")
	}
	if _, exists := r.found[fr.ID]; exists {
		return errors.New("report already exists")
	}
	r.found[fr.ID] = fr
	r.foundOrder = append(r.foundOrder, fr.ID)
	return nil
}

func (r *ReportsRepo) GetLost(ctx context.Context, id string) (reports.LostReport, error) {
	r.mu.RLock()
	lr, ok := r.lost[id]
	r.mu.RUnlock()
	if !ok {
		return reports.LostReport{}, reports.ErrNotFound
	}
	return r.withPet(ctx, lr), nil
}

func (r *ReportsRepo) GetFound(ctx context.Context, id string) (reports.FoundReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fr, ok := r.found[id]
	if !ok {
		return reports.FoundReport{}, reports.ErrNotFound
	}
	return fr, nil
}

// ListLost: created_at desc.
func (r *ReportsRepo) ListLost(ctx context.Context, f reports.LostFilter) ([]reports.LostReport, error) {
	all := r.snapshotLost(ctx)

	out := make([]reports.LostReport, 0)
	for _, lr := range all {
		if f.OwnerID != "" && lr.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && lr.Status != f.Status {
			continue
		}
		if f.Species != "" && lr.Species() != f.Species {
			continue
		}
		if f.Breed != "" && (lr.Pet == nil || !containsFold(lr.Pet.Breed, f.Breed)) {
			continue
		}
		if f.Location != "" && !containsFold(lr.LastSeenLocation, f.Location) {
			continue
		}
		if f.Search != "" {
			hit := containsFold(lr.Description, f.Search)
			if lr.Pet != nil {
				hit = hit || containsFold(lr.Pet.Name, f.Search) || containsFold(lr.Pet.Breed, f.Search)
			}
			if !hit {
				continue
			}
		}
		if !resolvedBefore(lr.ResolvedAt, f.ResolvedBefore) {
			continue
		}
		out = append(out, lr)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListFound: created_at desc. VisibleTo suma los reportes propios aunque no cumplan Status.
func (r *ReportsRepo) ListFound(ctx context.Context, f reports.FoundFilter) ([]reports.FoundReport, error) {
	all := r.snapshotFound()

	out := make([]reports.FoundReport, 0)
	for _, fr := range all {
		if f.Status != "" && fr.Status != f.Status {
			if f.VisibleTo == "" || fr.ReporterID != f.VisibleTo {
				continue
			}
		}
		if f.ReporterID != "" && fr.ReporterID != f.ReporterID {
			continue
		}
		if f.Species != "" && fr.Species != f.Species {
			continue
		}
		if f.Breed != "" && !containsFold(fr.Breed, f.Breed) {
			continue
		}
		if f.Color != "" && !containsFold(fr.Color, f.Color) {
			continue
		}
		if f.Location != "" && !containsFold(fr.LocationFound, f.Location) {
			continue
		}
		if f.Search != "" && !containsFold(fr.Description, f.Search) && !containsFold(fr.Breed, f.Search) {
			continue
		}
		if !resolvedBefore(fr.ResolvedAt, f.ResolvedBefore) {
			continue
		}
		out = append(out, fr)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListActiveLostBySpecies: orden de inserción.
func (r *ReportsRepo) ListActiveLostBySpecies(ctx context.Context, species pets.Species, excludeOwnerID string) ([]reports.LostReport, error) {
	out := make([]reports.LostReport, 0)
	for _, lr := range r.snapshotLost(ctx) {
		if lr.Status != reports.StatusActive || lr.Species() != species {
			continue
		}
		if excludeOwnerID != "" && lr.OwnerID == excludeOwnerID {
			continue
		}
		out = append(out, lr)
	}
	return out, nil
}

func (r *ReportsRepo) ListActiveFoundBySpecies(ctx context.Context, species pets.Species, excludeReporterID string) ([]reports.FoundReport, error) {
	out := make([]reports.FoundReport, 0)
	for _, fr := range r.snapshotFound() {
		if fr.Status != reports.StatusActive || fr.Species != species {
			continue
		}
		if excludeReporterID != "" && fr.ReporterID == excludeReporterID {
			continue
		}
		out = append(out, fr)
	}
	return out, nil
}

func (r *ReportsRepo) SetLostStatus(ctx context.Context, id string, status reports.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lr, ok := r.lost[id]
	if !ok {
		return reports.ErrNotFound
	}
	if lr.Status == status {
		return nil
	}
	if !reports.CanTransition(lr.Status, status) {
		return reports.ErrStatusChanged
	}
	lr.Status = status
	lr.UpdatedAt = at
	if status == reports.StatusResolved {
		t := at
		lr.ResolvedAt = &t
	}
	r.lost[id] = lr
	return nil
}

func (r *ReportsRepo) SetFoundStatus(ctx context.Context, id string, status reports.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fr, ok := r.found[id]
	if !ok {
		return reports.ErrNotFound
	}
	if fr.Status == status {
		return nil
	}
	if !reports.CanTransition(fr.Status, status) {
		return reports.ErrStatusChanged
	}
	fr.Status = status
	fr.UpdatedAt = at
	if status == reports.StatusResolved {
		t := at
		fr.ResolvedAt = &t
	}
	r.found[id] = fr
	return nil
}

func (r *ReportsRepo) AddImage(ctx context.Context, img reports.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(img.ID) == "" {
		return errors.New("image id required")
	}
	if img.IsPrimary {
		// una sola principal por reporte
		for id, other := range r.images {
			if other.Kind == img.Kind && other.ReportID == img.ReportID && other.IsPrimary {
				other.IsPrimary = false
				r.images[id] = other
			}
		}
	}
	r.images[img.ID] = img
	return nil
}

// ListImages: principal primero, luego created_at asc.
func (r *ReportsRepo) ListImages(ctx context.Context, kind reports.Kind, reportID string) ([]reports.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reports.Image, 0)
	for _, img := range r.images {
		if img.Kind == kind && img.ReportID == reportID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ReportsRepo) DeleteImage(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[id]; !ok {
		return reports.ErrNotFound
	}
	delete(r.images, id)
	return nil
}

func (r *ReportsRepo) snapshotLost(ctx context.Context) []reports.LostReport {
	r.mu.RLock()
	out := make([]reports.LostReport, 0, len(r.lostOrder))
	for _, id := range r.lostOrder {
		out = append(out, r.lost[id])
	}
	r.mu.RUnlock()

	for i := range out {
		out[i] = r.withPet(ctx, out[i])
	}
	return out
}

func (r *ReportsRepo) snapshotFound() []reports.FoundReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reports.FoundReport, 0, len(r.foundOrder))
	for _, id := range r.foundOrder {
		out = append(out, r.found[id])
	}
	return out
}

func (r *ReportsRepo) withPet(ctx context.Context, lr reports.LostReport) reports.LostReport {
	lr.Pet = nil
	if r.pets == nil {
		return lr
	}
	p, err := r.pets.GetByID(ctx, lr.PetID)
	if err != nil {
		return lr
	}
	lr.Pet = &reports.PetProfile{ID: p.ID, Name: p.Name, Species: p.Species, Breed: p.Breed}
	return lr
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func resolvedBefore(resolvedAt, cutoff *time.Time) bool {
	if cutoff == nil {
		return true
	}
	return resolvedAt != nil && resolvedAt.Before(*cutoff)
}
