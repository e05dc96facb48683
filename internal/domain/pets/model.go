package pets

import "time"

// Pet es el aggregate raíz del marketplace: la subasta y las pujas
// dependen de su estado al momento de cada mutación.
type Pet struct {
	ID          string
	OwnerUserID string

	Name string
	Age  int

	// Available true = listada en el store y apta para acciones de subasta.
	// false = vendida (o retirada por términos de subasta).
	Available bool

	Price      float64
	CategoryID string
	TagIDs     []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusLabel es la representación pública del flag de disponibilidad.
func (p Pet) StatusLabel() string {
	if p.Available {
		return "available"
	}
	return "sold"
}
