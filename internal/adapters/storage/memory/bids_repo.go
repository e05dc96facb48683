package memory

import (
	"context"
	"errors"
	"strings"

	"pet-marketplace/internal/domain/bids"
)

type bidsRepo struct {
	s *Store
}

func NewBidsRepo(s *Store) bids.Repository {
	return &bidsRepo{s: s}
}

func (r *bidsRepo) Create(ctx context.Context, b bids.Bid) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("bid id required")
	}
	key := bidKey(b.AuctionID, b.BidderUserID)
	if _, exists := r.s.bidByBidder[key]; exists {
		return bids.ErrAlreadyBid
	}
	r.s.bids[b.ID] = b
	r.s.bidByBidder[key] = b.ID
	return nil
}

func (r *bidsRepo) Update(ctx context.Context, b bids.Bid) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.bids[b.ID]; !exists {
		return ErrNotFound
	}
	r.s.bids[b.ID] = b
	return nil
}

func (r *bidsRepo) GetByID(ctx context.Context, id string) (bids.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bids[id]
	if !ok {
		return bids.Bid{}, ErrNotFound
	}
	return b, nil
}

func (r *bidsRepo) ExistsForBidder(ctx context.Context, auctionID, bidderUserID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, exists := r.s.bidByBidder[bidKey(auctionID, bidderUserID)]
	return exists, nil
}

func (r *bidsRepo) ListByAuction(ctx context.Context, auctionID string) ([]bids.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]bids.Bid, 0)
	for _, b := range r.s.bids {
		if b.AuctionID == auctionID {
			out = append(out, b)
		}
	}
	sortByCreated(out, func(b bids.Bid) (string, int64) { return b.ID, b.CreatedAt.UnixNano() })
	return out, nil
}

func (r *bidsRepo) ListByBidder(ctx context.Context, bidderUserID string) ([]bids.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]bids.Bid, 0)
	for _, b := range r.s.bids {
		if b.BidderUserID == bidderUserID {
			out = append(out, b)
		}
	}
	sortByCreated(out, func(b bids.Bid) (string, int64) { return b.ID, b.CreatedAt.UnixNano() })
	return out, nil
}

func (r *bidsRepo) CountByAuction(ctx context.Context, auctionID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, b := range r.s.bids {
		if b.AuctionID == auctionID {
			n++
		}
	}
	return n, nil
}
