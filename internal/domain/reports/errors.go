package reports

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("report not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrBadState     = errors.New("invalid state")
	ErrUnavailable  = errors.New("image storage not configured")
)

// ReasonError lleva un motivo visible para el usuario y clasifica con Kind (errors.Is).
type ReasonError struct {
	Kind   error
	Reason string
}

func (e *ReasonError) Error() string { return e.Reason }
func (e *ReasonError) Unwrap() error { return e.Kind }

func reason(kind error, msg string) error {
	return &ReasonError{Kind: kind, Reason: msg}
}

var (
	ErrDuplicateActiveLost = reason(ErrConflict, "an active lost report already exists for this pet")
	ErrOwnLostPet          = reason(ErrInvalidInput, "you cannot report your own lost pet as found")
	ErrPetNotFound         = reason(ErrInvalidInput, "pet not found")
	ErrNotYourPet          = reason(ErrForbidden, "you can only report your own pets as lost")

	// ErrStatusChanged: el store rechazó el cambio porque el reporte ya no está en un estado de origen válido.
	ErrStatusChanged = reason(ErrBadState, "report status changed concurrently")
)

// Invalid arma un error de validación con motivo.
func Invalid(msg string) error {
	return reason(ErrInvalidInput, msg)
}

// Forbidden arma un error de autorización con motivo.
func Forbidden(msg string) error {
	return reason(ErrForbidden, msg)
}
