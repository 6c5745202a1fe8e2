package pets

import (
	"strings"
	"time"
)

// Species es el tipo de mascota. Conjunto cerrado: el matching compara por igualdad exacta.
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesRabbit  Species = "rabbit"
	SpeciesHamster Species = "hamster"
	SpeciesOther   Species = "other"
)

// ParseSpecies normaliza y valida. Devuelve false si no es una especie soportada.
func ParseSpecies(s string) (Species, bool) {
	sp := Species(strings.ToLower(strings.TrimSpace(s)))
	switch sp {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesHamster, SpeciesOther:
		return sp, true
	default:
		return "", false
	}
}

// Sex define el sexo de la mascota.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet es el registro de una mascota adoptada. Para lost & found solo interesan
// dueño, especie, raza y nombre.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string // texto libre
	Sex     Sex

	BirthDate *time.Time
	Microchip string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
