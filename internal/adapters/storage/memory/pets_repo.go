package memory

import (
	"context"
	"errors"
	"strings"

	"pet-marketplace/internal/domain/pets"
)

type petsRepo struct {
	s *Store
}

func NewPetsRepo(s *Store) pets.Repository {
	return &petsRepo{s: s}
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.s.pets[p.ID] = clonePet(p)
	return nil
}

func (r *petsRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[p.ID]; !exists {
		return ErrNotFound
	}
	r.s.pets[p.ID] = clonePet(p)
	return nil
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.OwnerUserID == ownerUserID {
			out = append(out, clonePet(p))
		}
	}
	sortByCreated(out, func(p pets.Pet) (string, int64) { return p.ID, p.CreatedAt.UnixNano() })
	return out, nil
}

func (r *petsRepo) ListAvailable(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.Available {
			out = append(out, clonePet(p))
		}
	}
	sortByCreated(out, func(p pets.Pet) (string, int64) { return p.ID, p.CreatedAt.UnixNano() })
	return out, nil
}

func (r *petsRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[id]; !exists {
		return ErrNotFound
	}
	r.s.deletePetLocked(id)
	return nil
}

// clonePet copia el slice de tags para que el caller no comparta backing array
// con el store.
func clonePet(p pets.Pet) pets.Pet {
	if p.TagIDs != nil {
		tags := make([]string, len(p.TagIDs))
		copy(tags, p.TagIDs)
		p.TagIDs = tags
	}
	return p
}
