package reports

import (
	"context"
	"time"

	"pet-lost-found/internal/domain/pets"
)

// LostFilter: campos vacíos = sin filtro.
type LostFilter struct {
	OwnerID        string
	Status         Status
	Species        pets.Species
	Breed          string // contains, case-insensitive
	Location       string // contains, case-insensitive
	Search         string // nombre/raza de la mascota o descripción
	ResolvedBefore *time.Time
}

type FoundFilter struct {
	Status Status
	// VisibleTo suma los reportes propios de ese usuario aunque no cumplan Status.
	VisibleTo      string
	ReporterID     string
	Species        pets.Species
	Breed          string
	Color          string
	Location       string
	Search         string // descripción o raza
	ResolvedBefore *time.Time
}

type Repository interface {
	// CreateLost devuelve ErrDuplicateActiveLost si la mascota ya tiene un reporte activo.
	CreateLost(ctx context.Context, r LostReport) error
	CreateFound(ctx context.Context, r FoundReport) error

	GetLost(ctx context.Context, id string) (LostReport, error)
	GetFound(ctx context.Context, id string) (FoundReport, error)

	ListLost(ctx context.Context, f LostFilter) ([]LostReport, error)
	ListFound(ctx context.Context, f FoundFilter) ([]FoundReport, error)

	// Consultas de candidatos: solo status active, misma especie, sin la contraparte excluida.
	ListActiveLostBySpecies(ctx context.Context, species pets.Species, excludeOwnerID string) ([]LostReport, error)
	ListActiveFoundBySpecies(ctx context.Context, species pets.Species, excludeReporterID string) ([]FoundReport, error)

	// SetLostStatus / SetFoundStatus actualizan status y updated_at; con resolved también resolved_at.
	// El cambio se valida contra el estado guardado (CanTransition): si ya está en status es no-op,
	// si no se puede llegar devuelve ErrStatusChanged.
	SetLostStatus(ctx context.Context, id string, status Status, at time.Time) error
	SetFoundStatus(ctx context.Context, id string, status Status, at time.Time) error
}

type ImageRepository interface {
	AddImage(ctx context.Context, img Image) error
	ListImages(ctx context.Context, kind Kind, reportID string) ([]Image, error)
	DeleteImage(ctx context.Context, id string) error
}
