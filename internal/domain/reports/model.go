package reports

import (
	"strings"
	"time"

	"pet-lost-found/internal/domain/pets"
)

// Status es el estado de un reporte (lost o found). Los valores se persisten tal cual.
type Status string

const (
	StatusActive    Status = "active"
	StatusMatched   Status = "matched"
	StatusResolved  Status = "resolved"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusActive, StatusMatched, StatusResolved, StatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// IsTerminal: resolved y cancelled no tienen salida.
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusCancelled
}

// CanTransition valida cambios de estado de un reporte.
// matched -> matched se acepta (un reporte puede sumar varios matches).
func CanTransition(from, to Status) bool {
	switch from {
	case StatusActive:
		return to == StatusMatched || to == StatusResolved || to == StatusCancelled
	case StatusMatched:
		return to == StatusMatched || to == StatusResolved || to == StatusCancelled
	default:
		return false
	}
}

// SourcesOf lista los estados desde los que se puede pasar a to.
func SourcesOf(to Status) []Status {
	var out []Status
	for _, from := range []Status{StatusActive, StatusMatched, StatusResolved, StatusCancelled} {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

// Size es opcional en ambos reportes.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// PetProfile es la parte del registro de la mascota que usa el matching.
type PetProfile struct {
	ID      string
	Name    string
	Species pets.Species
	Breed   string
}

// LostReport: mascota conocida (registrada) que su dueño reporta como perdida.
type LostReport struct {
	ID      string
	OwnerID string
	PetID   string

	// Pet lo resuelve el repositorio; nil si la mascota ya no existe.
	Pet *PetProfile

	LastSeenLocation string
	LastSeenDate     time.Time
	Color            string
	Size             Size
	Description      string

	Status Status

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// Species devuelve la especie de la mascota vinculada, o "" si no hay mascota.
func (r LostReport) Species() pets.Species {
	if r.Pet == nil {
		return ""
	}
	return r.Pet.Species
}

// FoundReport: mascota sin dueño conocido encontrada por un usuario (adopter o shelter).
type FoundReport struct {
	ID         string
	ReporterID string

	Species pets.Species
	Breed   string
	Color   string
	Size    Size

	Description   string
	LocationFound string
	DateFound     time.Time

	ContactPhone string
	ContactEmail string

	Status Status

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// Kind distingue a qué tipo de reporte pertenece una imagen.
type Kind string

const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

// Image es la metadata de una foto subida a un reporte. Los bytes viven en el image store.
type Image struct {
	ID          string
	Kind        Kind
	ReportID    string
	ObjectKey   string
	ContentType string
	Size        int64
	IsPrimary   bool
	CreatedAt   time.Time
}
