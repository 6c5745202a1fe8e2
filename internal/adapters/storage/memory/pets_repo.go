package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-lost-found/internal/domain/pets"
)

// PetRepo guarda mascotas en orden de alta; ListByOwner las devuelve en ese orden.
type PetRepo struct {
	mu    sync.RWMutex
	byID  map[string]pets.Pet
	order []string
}

var (
	_ pets.Repository = (*PetRepo)(nil)

	errPetExists = errors.New("pet already exists")
)

func NewPetRepo() pets.Repository {
	return &PetRepo{byID: make(map[string]pets.Pet)}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return errPetExists
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (r *PetRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []pets.Pet{}
	for _, id := range r.order {
		if p := r.byID[id]; p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}
