package notifications

import "time"

// Type es el tipo de notificación. Los valores se persisten tal cual.
type Type string

const (
	TypeMatchFound     Type = "match_found"
	TypeMatchConfirmed Type = "match_confirmed"
	// TypeMatchRejected existe en el catálogo pero hoy nadie la emite.
	TypeMatchRejected Type = "match_rejected"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMatchFound, TypeMatchConfirmed, TypeMatchRejected:
		return true
	default:
		return false
	}
}

// Notification es el aviso in-app de un match para uno de sus participantes.
type Notification struct {
	ID      string
	MatchID string
	UserID  string

	Type    Type
	Title   string
	Message string

	IsRead bool
	ReadAt *time.Time

	CreatedAt time.Time
}
