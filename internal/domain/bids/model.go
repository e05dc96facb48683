package bids

import "time"

// Bid es una oferta de precio de un usuario contra una subasta.
// Una enmienda sobreescribe Price in place: no se conserva historial.
type Bid struct {
	ID           string
	AuctionID    string
	BidderUserID string
	Price        float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
