package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/validate"
	"pet-lost-found/internal/ports/roles"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// PetLookup evita depender del Service de pets completo.
type PetLookup interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

// Matcher es el motor de matching visto desde el intake de reportes.
// Se inyecta para no importar matching (matching ya importa reports).
type Matcher interface {
	// CheckOwnLostPet rechaza un found report que coincide con un lost report activo del mismo usuario.
	CheckOwnLostPet(ctx context.Context, draft FoundReport) error
	OnLostReported(ctx context.Context, r LostReport)
	OnFoundReported(ctx context.Context, r FoundReport)
}

type Service struct {
	repo    Repository
	pets    PetLookup
	roles   roles.Resolver
	matcher Matcher
	log     logger.Logger
	now     func() time.Time

	images *imageManager
}

type Options struct {
	Pets    PetLookup
	Roles   roles.Resolver // nil = modo dev (adopter + shelter para todos)
	Matcher Matcher        // nil = sin matching al crear
	Logger  logger.Logger
}

func NewService(repo Repository, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		pets:    opts.Pets,
		roles:   opts.Roles,
		matcher: opts.Matcher,
		log:     log.With(map[string]any{"component": "reports"}),
		now:     time.Now,
	}
}

// SetMatcher permite cablear el motor después de construir ambos servicios.
func (s *Service) SetMatcher(m Matcher) {
	s.matcher = m
}

type CreateLostInput struct {
	PetID            string `validate:"notblank"`
	LastSeenLocation string `validate:"notblank,max=200"`
	LastSeenDate     string `validate:"required,date"`
	Color            string `validate:"max=100"`
	Size             string `validate:"omitempty,oneof=small medium large"`
	Description      string
}

type CreateFoundInput struct {
	Species       string `validate:"required,oneof=dog cat bird rabbit hamster other"`
	Breed         string `validate:"max=100"`
	Color         string `validate:"max=100"`
	Size          string `validate:"omitempty,oneof=small medium large"`
	Description   string `validate:"notblank"`
	LocationFound string `validate:"notblank,max=200"`
	DateFound     string `validate:"required,date"`
	ContactPhone  string `validate:"notblank,max=20"`
	ContactEmail  string `validate:"required,email"`
}

// CreateLost registra un lost report (solo adopters, solo mascotas propias) y dispara el matching.
func (s *Service) CreateLost(ctx context.Context, ownerID string, in CreateLostInput) (LostReport, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return LostReport{}, ErrInvalidInput
	}

	in.Size = strings.ToLower(strings.TrimSpace(in.Size))
	if err := validate.Struct(in); err != nil {
		return LostReport{}, Invalid(err.Error())
	}

	if err := s.requireRole(ctx, ownerID, "only adopters can report lost pets", roles.RoleAdopter); err != nil {
		return LostReport{}, err
	}

	if s.pets == nil {
		return LostReport{}, ErrPetNotFound
	}
	pet, err := s.pets.GetByID(ctx, strings.TrimSpace(in.PetID))
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return LostReport{}, ErrPetNotFound
		}
		return LostReport{}, err
	}
	if pet.OwnerUserID != ownerID {
		return LostReport{}, ErrNotYourPet
	}

	lastSeen, _ := time.Parse(dateLayout, strings.TrimSpace(in.LastSeenDate))

	now := s.now()
	r := LostReport{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		PetID:   pet.ID,
		Pet: &PetProfile{
			ID:      pet.ID,
			Name:    pet.Name,
			Species: pet.Species,
			Breed:   pet.Breed,
		},
		LastSeenLocation: strings.TrimSpace(in.LastSeenLocation),
		LastSeenDate:     lastSeen,
		Color:            strings.TrimSpace(in.Color),
		Size:             Size(in.Size),
		Description:      strings.TrimSpace(in.Description),
		Status:           StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.CreateLost(ctx, r); err != nil {
		return LostReport{}, err
	}

	if s.matcher != nil {
		s.matcher.OnLostReported(ctx, r)
	}

	return s.refreshLost(ctx, r), nil
}

// CreateFound registra un found report (adopters y shelters) y dispara el matching.
func (s *Service) CreateFound(ctx context.Context, reporterID string, in CreateFoundInput) (FoundReport, error) {
	reporterID = strings.TrimSpace(reporterID)
	if reporterID == "" {
		return FoundReport{}, ErrInvalidInput
	}

	in.Species = strings.ToLower(strings.TrimSpace(in.Species))
	in.Size = strings.ToLower(strings.TrimSpace(in.Size))
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	if err := validate.Struct(in); err != nil {
		return FoundReport{}, Invalid(err.Error())
	}

	if err := s.requireRole(ctx, reporterID, "only adopters and shelters can report found pets", roles.RoleAdopter, roles.RoleShelter); err != nil {
		return FoundReport{}, err
	}

	species, _ := pets.ParseSpecies(in.Species)
	dateFound, _ := time.Parse(dateLayout, strings.TrimSpace(in.DateFound))

	now := s.now()
	r := FoundReport{
		ID:            uuid.NewString(),
		ReporterID:    reporterID,
		Species:       species,
		Breed:         strings.TrimSpace(in.Breed),
		Color:         strings.TrimSpace(in.Color),
		Size:          Size(in.Size),
		Description:   strings.TrimSpace(in.Description),
		LocationFound: strings.TrimSpace(in.LocationFound),
		DateFound:     dateFound,
		ContactPhone:  strings.TrimSpace(in.ContactPhone),
		ContactEmail:  in.ContactEmail,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if s.matcher != nil {
		if err := s.matcher.CheckOwnLostPet(ctx, r); err != nil {
			return FoundReport{}, err
		}
	}

	if err := s.repo.CreateFound(ctx, r); err != nil {
		return FoundReport{}, err
	}

	if s.matcher != nil {
		s.matcher.OnFoundReported(ctx, r)
	}

	return s.refreshFound(ctx, r), nil
}

// GetLost: el dueño o un admin.
func (s *Service) GetLost(ctx context.Context, userID, id string) (LostReport, error) {
	r, err := s.repo.GetLost(ctx, strings.TrimSpace(id))
	if err != nil {
		return LostReport{}, err
	}
	if r.OwnerID == userID {
		return r, nil
	}
	if s.isAdmin(ctx, userID) {
		return r, nil
	}
	return LostReport{}, ErrForbidden
}

// GetFound es público, como el listado.
func (s *Service) GetFound(ctx context.Context, id string) (FoundReport, error) {
	return s.repo.GetFound(ctx, strings.TrimSpace(id))
}

// ShareLost devuelve un lost report sin chequeo de dueño (vista pública para compartir).
func (s *Service) ShareLost(ctx context.Context, id string) (LostReport, error) {
	return s.repo.GetLost(ctx, strings.TrimSpace(id))
}

// ListLost: los no-admin solo ven sus reportes.
func (s *Service) ListLost(ctx context.Context, userID string, f LostFilter) ([]LostReport, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	if !s.isAdmin(ctx, userID) {
		f.OwnerID = userID
	}
	return s.repo.ListLost(ctx, f)
}

// ListFound: público filtrado por status (default active); con usuario suma los propios.
func (s *Service) ListFound(ctx context.Context, userID string, f FoundFilter) ([]FoundReport, error) {
	if f.Status == "" {
		f.Status = StatusActive
	}
	f.VisibleTo = strings.TrimSpace(userID)
	return s.repo.ListFound(ctx, f)
}

// ResolveLost es la acción directa del dueño ("mascota apareció").
func (s *Service) ResolveLost(ctx context.Context, userID, id string) (LostReport, error) {
	return s.setLostStatus(ctx, userID, id, StatusResolved, "only the owner can resolve this report")
}

func (s *Service) CancelLost(ctx context.Context, userID, id string) (LostReport, error) {
	return s.setLostStatus(ctx, userID, id, StatusCancelled, "only the owner can cancel this report")
}

func (s *Service) ResolveFound(ctx context.Context, userID, id string) (FoundReport, error) {
	return s.setFoundStatus(ctx, userID, id, StatusResolved, "only the reporter can resolve this report")
}

func (s *Service) CancelFound(ctx context.Context, userID, id string) (FoundReport, error) {
	return s.setFoundStatus(ctx, userID, id, StatusCancelled, "only the reporter can cancel this report")
}

func (s *Service) setLostStatus(ctx context.Context, userID, id string, to Status, forbidden string) (LostReport, error) {
	r, err := s.repo.GetLost(ctx, strings.TrimSpace(id))
	if err != nil {
		return LostReport{}, err
	}
	if r.OwnerID != userID {
		return LostReport{}, Forbidden(forbidden)
	}
	if r.Status == to {
		return r, nil
	}
	if !CanTransition(r.Status, to) {
		return LostReport{}, reason(ErrBadState, "report is already "+string(r.Status))
	}
	if err := s.repo.SetLostStatus(ctx, r.ID, to, s.now()); err != nil {
		return LostReport{}, err
	}
	return s.repo.GetLost(ctx, r.ID)
}

func (s *Service) setFoundStatus(ctx context.Context, userID, id string, to Status, forbidden string) (FoundReport, error) {
	r, err := s.repo.GetFound(ctx, strings.TrimSpace(id))
	if err != nil {
		return FoundReport{}, err
	}
	if r.ReporterID != userID {
		return FoundReport{}, Forbidden(forbidden)
	}
	if r.Status == to {
		return r, nil
	}
	if !CanTransition(r.Status, to) {
		return FoundReport{}, reason(ErrBadState, "report is already "+string(r.Status))
	}
	if err := s.repo.SetFoundStatus(ctx, r.ID, to, s.now()); err != nil {
		return FoundReport{}, err
	}
	return s.repo.GetFound(ctx, r.ID)
}

// refresh*: el matching puede haber movido el reporte a matched.
func (s *Service) refreshLost(ctx context.Context, r LostReport) LostReport {
	fresh, err := s.repo.GetLost(ctx, r.ID)
	if err != nil {
		return r
	}
	return fresh
}

func (s *Service) refreshFound(ctx context.Context, r FoundReport) FoundReport {
	fresh, err := s.repo.GetFound(ctx, r.ID)
	if err != nil {
		return r
	}
	return fresh
}

func (s *Service) rolesOf(ctx context.Context, userID string) ([]roles.Role, error) {
	if s.roles == nil {
		return []roles.Role{roles.RoleAdopter, roles.RoleShelter}, nil
	}
	return s.roles.Roles(ctx, userID)
}

func (s *Service) requireRole(ctx context.Context, userID, msg string, want ...roles.Role) error {
	have, err := s.rolesOf(ctx, userID)
	if err != nil {
		s.log.Warn("role lookup failed", map[string]any{"user_id": userID, "error": err})
		return Forbidden(msg)
	}
	if !roles.HasAny(have, want...) {
		return Forbidden(msg)
	}
	return nil
}

func (s *Service) isAdmin(ctx context.Context, userID string) bool {
	have, err := s.rolesOf(ctx, userID)
	if err != nil {
		return false
	}
	return roles.HasAny(have, roles.RoleAdmin)
}
