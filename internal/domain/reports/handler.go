package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 12 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/lost", func(lr chi.Router) {
		lr.Post("/", createLostHandler(svc))
		lr.Get("/", listLostHandler(svc))
		lr.Get("/{reportID}", getLostHandler(svc))
		lr.Get("/{reportID}/share", shareLostHandler(svc))
		lr.Post("/{reportID}/resolve", lostStatusHandler(svc.ResolveLost))
		lr.Post("/{reportID}/cancel", lostStatusHandler(svc.CancelLost))
		lr.Post("/{reportID}/images", uploadImageHandler(svc, KindLost))
		lr.Get("/{reportID}/images", listImagesHandler(svc, KindLost))
	})

	r.Route("/found", func(fr chi.Router) {
		fr.Post("/", createFoundHandler(svc))
		fr.Get("/", listFoundHandler(svc))
		fr.Get("/{reportID}", getFoundHandler(svc))
		fr.Post("/{reportID}/resolve", foundStatusHandler(svc.ResolveFound))
		fr.Post("/{reportID}/cancel", foundStatusHandler(svc.CancelFound))
		fr.Post("/{reportID}/images", uploadImageHandler(svc, KindFound))
		fr.Get("/{reportID}/images", listImagesHandler(svc, KindFound))
	})
}

type createLostRequest struct {
	PetID            string `json:"pet_id"`
	LastSeenLocation string `json:"last_seen_location"`
	LastSeenDate     string `json:"last_seen_date"` // YYYY-MM-DD
	Color            string `json:"color"`
	Size             string `json:"size" enums:"small,medium,large"`
	Description      string `json:"description"`
}

type createFoundRequest struct {
	PetType       string `json:"pet_type" enums:"dog,cat,bird,rabbit,hamster,other"`
	Breed         string `json:"breed"`
	Color         string `json:"color"`
	Size          string `json:"size" enums:"small,medium,large"`
	Description   string `json:"description"`
	LocationFound string `json:"location_found"`
	DateFound     string `json:"date_found"` // YYYY-MM-DD
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email"`
}

type petSummary struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	PetType pets.Species `json:"pet_type"`
	Breed   string       `json:"breed"`
}

type lostReportResponse struct {
	ID               string      `json:"id"`
	OwnerID          string      `json:"owner_id"`
	PetID            string      `json:"pet_id"`
	Pet              *petSummary `json:"pet,omitempty"`
	LastSeenLocation string      `json:"last_seen_location"`
	LastSeenDate     string      `json:"last_seen_date"`
	Color            string      `json:"color"`
	Size             Size        `json:"size,omitempty"`
	Description      string      `json:"description"`
	Status           Status      `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	ResolvedAt       *time.Time  `json:"resolved_at,omitempty"`
}

type foundReportResponse struct {
	ID            string       `json:"id"`
	ReporterID    string       `json:"reporter_id"`
	PetType       pets.Species `json:"pet_type"`
	Breed         string       `json:"breed"`
	Color         string       `json:"color"`
	Size          Size         `json:"size,omitempty"`
	Description   string       `json:"description"`
	LocationFound string       `json:"location_found"`
	DateFound     string       `json:"date_found"`
	ContactPhone  string       `json:"contact_phone"`
	ContactEmail  string       `json:"contact_email"`
	Status        Status       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	ResolvedAt    *time.Time   `json:"resolved_at,omitempty"`
}

type imageResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	IsPrimary   bool      `json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
}

// createLostHandler godoc
// @Summary Reportar mascota perdida
// @Description Crea un lost report para una mascota registrada del usuario (rol adopter). Dispara el matching contra found reports activos de la misma especie.
// @Tags lost
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createLostRequest true "Datos del reporte; last_seen_date en formato YYYY-MM-DD"
// @Success 201 {object} lostReportResponse
// @Failure 400 {string} string "invalid json / validación / pet not found"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "rol o mascota ajena"
// @Failure 409 {string} string "an active lost report already exists for this pet"
// @Router /lost [post]
func createLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createLostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rep, err := svc.CreateLost(r.Context(), claims.UserID, CreateLostInput{
			PetID:            req.PetID,
			LastSeenLocation: req.LastSeenLocation,
			LastSeenDate:     req.LastSeenDate,
			Color:            req.Color,
			Size:             req.Size,
			Description:      req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toLostResponse(rep))
	}
}

// listLostHandler godoc
// @Summary Listar lost reports
// @Description Los usuarios ven solo sus reportes; los admins ven todos.
// @Tags lost
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param status query string false "active|matched|resolved|cancelled"
// @Param pet_type query string false "Especie"
// @Param breed query string false "Raza (contiene)"
// @Param location query string false "Ubicación (contiene)"
// @Param search query string false "Nombre, raza o descripción"
// @Success 200 {array} lostReportResponse
// @Failure 400 {string} string "filtro inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /lost [get]
func listLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		status, species, err := parseStatusAndType(q.Get("status"), q.Get("pet_type"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListLost(r.Context(), claims.UserID, LostFilter{
			Status:   status,
			Species:  species,
			Breed:    strings.TrimSpace(q.Get("breed")),
			Location: strings.TrimSpace(q.Get("location")),
			Search:   strings.TrimSpace(q.Get("search")),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]lostReportResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toLostResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getLostHandler godoc
// @Summary Ver un lost report
// @Description Solo el dueño del reporte o un admin.
// @Tags lost
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param reportID path string true "ID del reporte"
// @Success 200 {object} lostReportResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "report not found"
// @Router /lost/{reportID} [get]
func getLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rep, err := svc.GetLost(r.Context(), claims.UserID, chi.URLParam(r, "reportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLostResponse(rep))
	}
}

// shareLostHandler godoc
// @Summary Vista pública de un lost report
// @Description Sin autenticación, para compartir el reporte.
// @Tags lost
// @Produce json
// @Param reportID path string true "ID del reporte"
// @Success 200 {object} lostReportResponse
// @Failure 404 {string} string "report not found"
// @Router /lost/{reportID}/share [get]
func shareLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.ShareLost(r.Context(), chi.URLParam(r, "reportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLostResponse(rep))
	}
}

// lostStatusHandler godoc
// @Summary Resolver o cancelar un lost report
// @Description Solo el dueño. Un reporte resuelto o cancelado no vuelve a activo.
// @Tags lost
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param reportID path string true "ID del reporte"
// @Success 200 {object} lostReportResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "report not found"
// @Failure 409 {string} string "transición inválida"
// @Router /lost/{reportID}/resolve [post]
// @Router /lost/{reportID}/cancel [post]
func lostStatusHandler(fn func(ctx context.Context, userID, id string) (LostReport, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rep, err := fn(r.Context(), claims.UserID, chi.URLParam(r, "reportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLostResponse(rep))
	}
}

// createFoundHandler godoc
// @Summary Reportar mascota encontrada
// @Description Crea un found report (rol adopter o shelter). Rechaza el reporte si coincide con una mascota perdida del mismo usuario. Dispara el matching contra lost reports activos.
// @Tags found
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createFoundRequest true "Datos del reporte; date_found en formato YYYY-MM-DD"
// @Success 201 {object} foundReportResponse
// @Failure 400 {string} string "invalid json / validación / you cannot report your own lost pet as found"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "rol"
// @Router /found [post]
func createFoundHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createFoundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rep, err := svc.CreateFound(r.Context(), claims.UserID, CreateFoundInput{
			Species:       req.PetType,
			Breed:         req.Breed,
			Color:         req.Color,
			Size:          req.Size,
			Description:   req.Description,
			LocationFound: req.LocationFound,
			DateFound:     req.DateFound,
			ContactPhone:  req.ContactPhone,
			ContactEmail:  req.ContactEmail,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toFoundResponse(rep))
	}
}

// listFoundHandler godoc
// @Summary Listar found reports
// @Description Público. Por defecto solo activos; con usuario autenticado se suman sus propios reportes en cualquier estado.
// @Tags found
// @Produce json
// @Param status query string false "active (default)|matched|resolved|cancelled"
// @Param pet_type query string false "Especie"
// @Param breed query string false "Raza (contiene)"
// @Param color query string false "Color (contiene)"
// @Param location query string false "Ubicación (contiene)"
// @Param search query string false "Descripción o raza"
// @Success 200 {array} foundReportResponse
// @Failure 400 {string} string "filtro inválido"
// @Router /found [get]
func listFoundHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		q := r.URL.Query()
		status, species, err := parseStatusAndType(q.Get("status"), q.Get("pet_type"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListFound(r.Context(), claims.UserID, FoundFilter{
			Status:   status,
			Species:  species,
			Breed:    strings.TrimSpace(q.Get("breed")),
			Color:    strings.TrimSpace(q.Get("color")),
			Location: strings.TrimSpace(q.Get("location")),
			Search:   strings.TrimSpace(q.Get("search")),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]foundReportResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toFoundResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getFoundHandler godoc
// @Summary Ver un found report
// @Description Público.
// @Tags found
// @Produce json
// @Param reportID path string true "ID del reporte"
// @Success 200 {object} foundReportResponse
// @Failure 404 {string} string "report not found"
// @Router /found/{reportID} [get]
func getFoundHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.GetFound(r.Context(), chi.URLParam(r, "reportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFoundResponse(rep))
	}
}

// foundStatusHandler godoc
// @Summary Resolver o cancelar un found report
// @Description Solo el autor del reporte.
// @Tags found
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param reportID path string true "ID del reporte"
// @Success 200 {object} foundReportResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "report not found"
// @Failure 409 {string} string "transición inválida"
// @Router /found/{reportID}/resolve [post]
// @Router /found/{reportID}/cancel [post]
func foundStatusHandler(fn func(ctx context.Context, userID, id string) (FoundReport, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rep, err := fn(r.Context(), claims.UserID, chi.URLParam(r, "reportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFoundResponse(rep))
	}
}

// uploadImageHandler godoc
// @Summary Subir foto a un reporte
// @Description multipart/form-data con el archivo en `image` y opcional `is_primary`. Solo el autor del reporte.
// @Tags images
// @Accept mpfd
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param reportID path string true "ID del reporte"
// @Param image formData file true "Imagen (jpeg, png, webp, gif)"
// @Param is_primary formData bool false "Foto principal"
// @Success 201 {object} imageResponse
// @Failure 400 {string} string "imagen inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "report not found"
// @Failure 503 {string} string "image storage not configured"
// @Router /lost/{reportID}/images [post]
// @Router /found/{reportID}/images [post]
func uploadImageHandler(svc *Service, kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		primary, _ := strconv.ParseBool(r.FormValue("is_primary"))

		img, err := svc.UploadImage(r.Context(), claims.UserID, UploadImageInput{
			Kind:        kind,
			ReportID:    chi.URLParam(r, "reportID"),
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			IsPrimary:   primary,
			Body:        file,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toImageResponse(img))
	}
}

// listImagesHandler godoc
// @Summary Listar fotos de un reporte
// @Tags images
// @Produce json
// @Param reportID path string true "ID del reporte"
// @Success 200 {array} imageResponse
// @Failure 404 {string} string "report not found"
// @Router /lost/{reportID}/images [get]
// @Router /found/{reportID}/images [get]
func listImagesHandler(svc *Service, kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListImages(r.Context(), kind, chi.URLParam(r, "reportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]imageResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toImageResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseStatusAndType(rawStatus, rawType string) (Status, pets.Species, error) {
	var (
		status  Status
		species pets.Species
	)
	if strings.TrimSpace(rawStatus) != "" {
		st, ok := ParseStatus(rawStatus)
		if !ok {
			return "", "", errors.New("invalid status")
		}
		status = st
	}
	if strings.TrimSpace(rawType) != "" {
		sp, ok := pets.ParseSpecies(rawType)
		if !ok {
			return "", "", errors.New("invalid pet_type")
		}
		species = sp
	}
	return status, species, nil
}

func toLostResponse(r LostReport) lostReportResponse {
	out := lostReportResponse{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		PetID:            r.PetID,
		LastSeenLocation: r.LastSeenLocation,
		LastSeenDate:     r.LastSeenDate.Format(dateLayout),
		Color:            r.Color,
		Size:             r.Size,
		Description:      r.Description,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		ResolvedAt:       r.ResolvedAt,
	}
	if r.Pet != nil {
		out.Pet = &petSummary{ID: r.Pet.ID, Name: r.Pet.Name, PetType: r.Pet.Species, Breed: r.Pet.Breed}
	}
	return out
}

func toFoundResponse(r FoundReport) foundReportResponse {
	return foundReportResponse{
		ID:            r.ID,
		ReporterID:    r.ReporterID,
		PetType:       r.Species,
		Breed:         r.Breed,
		Color:         r.Color,
		Size:          r.Size,
		Description:   r.Description,
		LocationFound: r.LocationFound,
		DateFound:     r.DateFound.Format(dateLayout),
		ContactPhone:  r.ContactPhone,
		ContactEmail:  r.ContactEmail,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		ResolvedAt:    r.ResolvedAt,
	}
}

func toImageResponse(v ImageView) imageResponse {
	return imageResponse{
		ID:          v.ID,
		URL:         v.URL,
		ContentType: v.ContentType,
		Size:        v.Size,
		IsPrimary:   v.IsPrimary,
		CreatedAt:   v.CreatedAt,
	}
}

// writeError traduce errores de dominio a status HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrConflict), errors.Is(err, ErrBadState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
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
