package bids

import "context"

type Repository interface {
	// Create es insert-or-fail: devuelve ErrAlreadyBid si ya existe una puja
	// para (auction_id, bidder). La restricción de unicidad del storage es la
	// frontera de corrección; el chequeo previo del service es solo mensaje amable.
	Create(ctx context.Context, b Bid) error
	Update(ctx context.Context, b Bid) error
	GetByID(ctx context.Context, id string) (Bid, error)
	ExistsForBidder(ctx context.Context, auctionID, bidderUserID string) (bool, error)
	ListByAuction(ctx context.Context, auctionID string) ([]Bid, error)
	ListByBidder(ctx context.Context, bidderUserID string) ([]Bid, error)
	CountByAuction(ctx context.Context, auctionID string) (int, error)
}
