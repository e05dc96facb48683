package auctions

import "context"

type Repository interface {
	// Create falla con ErrPetAlreadyAuctioned si la mascota ya tiene subasta
	// (restricción de unicidad sobre pet_id, no chequeo read-then-write).
	Create(ctx context.Context, a Auction) error
	Update(ctx context.Context, a Auction) error
	GetByID(ctx context.Context, id string) (Auction, error)
	GetByPetID(ctx context.Context, petID string) (Auction, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Auction, error)

	// Delete elimina la subasta y cascadea sus pujas.
	Delete(ctx context.Context, id string) error
}
