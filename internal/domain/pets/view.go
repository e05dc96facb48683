package pets

import (
	"context"
	"time"
)

// Resumen de subasta para las vistas de mascota/store (sin detalle de pujas).
type AuctionSummary struct {
	ID           string
	NumberOfBids int
	StartPrice   float64
	StartDate    time.Time
	EndDate      time.Time
	Open         bool
}

// Bidder es la vista de una puja para el owner de la mascota.
type Bidder struct {
	UserID   string
	Username string
	Price    float64
}

// MarketView compone datos de subastas y pujas para las vistas.
// Lo implementa un adaptador en router (auctions + bids + users),
// así pets no importa esos módulos.
type MarketView interface {
	AuctionForPet(ctx context.Context, petID string) (AuctionSummary, bool, error)
	BiddersForPet(ctx context.Context, petID string) ([]Bidder, error)
}

// UserDirectory resuelve usernames para las vistas.
type UserDirectory interface {
	UsernameByID(ctx context.Context, userID string) (string, error)
}
