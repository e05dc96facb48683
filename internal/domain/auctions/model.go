package auctions

import "time"

// Auction es una ventana de pujas atada 1:1 a una mascota.
// No guarda estado abierto/cerrado: se deriva de las fechas al leer.
type Auction struct {
	ID    string
	PetID string

	StartPrice float64
	StartDate  time.Time
	EndDate    time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen deriva el estado en el momento de la lectura.
// Ojo: las pujas solo validan contra EndDate (ver bids.Service), esto es solo vista.
func IsOpen(a Auction, now time.Time) bool {
	return !now.Before(a.StartDate) && !now.After(a.EndDate)
}
