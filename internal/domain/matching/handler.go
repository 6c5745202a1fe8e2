package matching

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/matches", func(mr chi.Router) {
		mr.Get("/", listMatchesHandler(svc))
		mr.Get("/{matchID}", getMatchHandler(svc))
		mr.Post("/{matchID}/confirm", confirmMatchHandler(svc))
		mr.Post("/{matchID}/reject", rejectMatchHandler(svc))
		mr.Post("/{matchID}/resolve", resolveMatchHandler(svc))
	})
}

// matchResponse representa un match entre un lost report y un found report.
type matchResponse struct {
	ID                   string     `json:"id"`
	LostReportID         string     `json:"lost_report_id"`
	FoundReportID        string     `json:"found_report_id"`
	MatchScore           float64    `json:"match_score"`
	MatchReasons         []string   `json:"match_reasons"`
	Status               Status     `json:"status"`
	ConfirmedByLostOwner bool       `json:"confirmed_by_lost_owner"`
	ConfirmedByFinder    bool       `json:"confirmed_by_finder"`
	IsConfirmed          bool       `json:"is_confirmed"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
}

// listMatchesHandler godoc
// @Summary Listar matches del usuario
// @Description Matches donde el usuario es dueño del lost report o autor del found report. Orden: score desc, luego más recientes.
// @Tags matches
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} matchResponse
// @Failure 401 {string} string "unauthorized"
// @Router /matches [get]
func listMatchesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]matchResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMatchResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMatchHandler godoc
// @Summary Ver un match
// @Description Solo para el dueño del lost report o el autor del found report.
// @Tags matches
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param matchID path string true "ID del match"
// @Success 200 {object} matchResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "you are not involved in this match"
// @Failure 404 {string} string "match not found"
// @Router /matches/{matchID} [get]
func getMatchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "matchID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMatchResponse(m))
	}
}

type transitionFunc func(ctx context.Context, userID, id string) (Match, error)

// confirmMatchHandler godoc
// @Summary Confirmar un match
// @Description Marca la confirmación del usuario. Con las dos confirmaciones el match pasa a confirmed y se notifica a ambas partes.
// @Tags matches
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param matchID path string true "ID del match"
// @Success 200 {object} matchResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "you are not involved in this match"
// @Failure 404 {string} string "match not found"
// @Failure 409 {string} string "match is in a final state"
// @Router /matches/{matchID}/confirm [post]
func confirmMatchHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Confirm)
}

// rejectMatchHandler godoc
// @Summary Rechazar un match
// @Description Cualquiera de las partes descarta el match. No notifica.
// @Tags matches
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param matchID path string true "ID del match"
// @Success 200 {object} matchResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "you are not involved in this match"
// @Failure 404 {string} string "match not found"
// @Failure 409 {string} string "match is in a final state"
// @Router /matches/{matchID}/reject [post]
func rejectMatchHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Reject)
}

// resolveMatchHandler godoc
// @Summary Resolver un match
// @Description Requiere ambas confirmaciones. Resuelve también el lost report y el found report.
// @Tags matches
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param matchID path string true "ID del match"
// @Success 200 {object} matchResponse
// @Failure 400 {string} string "match must be confirmed by both parties before resolving"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "you are not involved in this match"
// @Failure 404 {string} string "match not found"
// @Failure 409 {string} string "match is in a final state"
// @Router /matches/{matchID}/resolve [post]
func resolveMatchHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Resolve)
}

func transitionHandler(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := fn(r.Context(), claims.UserID, chi.URLParam(r, "matchID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMatchResponse(m))
	}
}

func toMatchResponse(m Match) matchResponse {
	reasons := m.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return matchResponse{
		ID:                   m.ID,
		LostReportID:         m.LostReportID,
		FoundReportID:        m.FoundReportID,
		MatchScore:           m.Score,
		MatchReasons:         reasons,
		Status:               m.Status,
		ConfirmedByLostOwner: m.ConfirmedByLostOwner,
		ConfirmedByFinder:    m.ConfirmedByFinder,
		IsConfirmed:          m.IsConfirmed(),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		ResolvedAt:           m.ResolvedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotConfirmed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotParty):
		http.Error(w, err.Error(), http.StatusForbidden)
	case IsNotFound(err):
		http.Error(w, "match not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
