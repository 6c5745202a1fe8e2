package matching

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("match not found")
	ErrNotParty     = errors.New("you are not involved in this match")
	ErrBadState     = errors.New("match is in a final state")
	ErrNotConfirmed = errors.New("match must be confirmed by both parties before resolving")
)

// MutateFunc modifica el match dentro de la operación atómica del repo.
// Si devuelve error no se persiste nada.
type MutateFunc func(m *Match) error

type Repository interface {
	// Upsert crea el match del par o, si ya existe, actualiza solo score/reasons/updated_at.
	// Devuelve el match persistido y si fue creado.
	Upsert(ctx context.Context, m Match) (Match, bool, error)

	GetByID(ctx context.Context, id string) (Match, error)
	Exists(ctx context.Context, lostReportID, foundReportID string) (bool, error)

	// ListByParty: matches donde userID es dueño del lost o reporter del found,
	// ordenados por score desc y luego created_at desc.
	ListByParty(ctx context.Context, userID string) ([]Match, error)

	// Pares ya vinculados, para que el finder no los vuelva a proponer.
	MatchedFoundIDs(ctx context.Context, lostReportID string) (map[string]struct{}, error)
	MatchedLostIDs(ctx context.Context, foundReportID string) (map[string]struct{}, error)

	// Mutate aplica fn con el match bloqueado (fila / mutex) y lo guarda.
	// Si el match queda en resolved, el repo pasa ambos reportes a resolved en la misma operación.
	Mutate(ctx context.Context, id string, fn MutateFunc) (Match, error)
}
