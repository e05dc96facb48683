package memory

import (
	"context"
	"errors"
	"strings"

	"pet-marketplace/internal/domain/auctions"
)

type auctionsRepo struct {
	s *Store
}

func NewAuctionsRepo(s *Store) auctions.Repository {
	return &auctionsRepo{s: s}
}

func (r *auctionsRepo) Create(ctx context.Context, a auctions.Auction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("auction id required")
	}
	if _, exists := r.s.auctionByPet[a.PetID]; exists {
		return auctions.ErrPetAlreadyAuctioned
	}
	r.s.auctions[a.ID] = a
	r.s.auctionByPet[a.PetID] = a.ID
	return nil
}

func (r *auctionsRepo) Update(ctx context.Context, a auctions.Auction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.auctions[a.ID]; !exists {
		return ErrNotFound
	}
	r.s.auctions[a.ID] = a
	return nil
}

func (r *auctionsRepo) GetByID(ctx context.Context, id string) (auctions.Auction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.auctions[id]
	if !ok {
		return auctions.Auction{}, ErrNotFound
	}
	return a, nil
}

func (r *auctionsRepo) GetByPetID(ctx context.Context, petID string) (auctions.Auction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.auctionByPet[petID]
	if !ok {
		return auctions.Auction{}, ErrNotFound
	}
	return r.s.auctions[id], nil
}

func (r *auctionsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]auctions.Auction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]auctions.Auction, 0)
	for _, a := range r.s.auctions {
		p, ok := r.s.pets[a.PetID]
		if ok && p.OwnerUserID == ownerUserID {
			out = append(out, a)
		}
	}
	sortByCreated(out, func(a auctions.Auction) (string, int64) { return a.ID, a.CreatedAt.UnixNano() })
	return out, nil
}

func (r *auctionsRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.auctions[id]; !exists {
		return ErrNotFound
	}
	r.s.deleteAuctionLocked(id)
	return nil
}
