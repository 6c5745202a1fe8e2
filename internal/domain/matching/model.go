package matching

import (
	"strings"
	"time"
)

// Status es el estado de un match. Los valores se persisten tal cual.
type Status string

const (
	StatusPending   Status = "pending_confirmation"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusResolved  Status = "resolved"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusRejected, StatusResolved:
		return st, true
	default:
		return "", false
	}
}

// IsTerminal: rejected y resolved no admiten más cambios.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusResolved
}

// CanTransition:
//
//	pending_confirmation -> confirmed | rejected | resolved
//	confirmed            -> rejected | resolved
//
// (resolved desde pending solo si ambos confirmaron; eso lo valida el lifecycle)
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusRejected || to == StatusResolved
	case StatusConfirmed:
		return to == StatusRejected || to == StatusResolved
	default:
		return false
	}
}

// Match vincula un lost report con un found report. Único por par (lost, found).
type Match struct {
	ID            string
	LostReportID  string
	FoundReportID string

	// Score en [0, 100], sin redondeo.
	Score   float64
	Reasons []string

	Status Status

	ConfirmedByLostOwner bool
	ConfirmedByFinder    bool

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// IsConfirmed: ambas partes confirmaron.
func (m Match) IsConfirmed() bool {
	return m.ConfirmedByLostOwner && m.ConfirmedByFinder
}

const reasonsSep = "; "

// JoinReasons / SplitReasons: formato de persistencia de los motivos.
func JoinReasons(rs []string) string {
	return strings.Join(rs, reasonsSep)
}

func SplitReasons(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, reasonsSep)
}
