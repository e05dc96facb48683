package pets

import (
	"net/http"
	"time"

	"pet-marketplace/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// El store es la vitrina pública: solo mascotas disponibles, sin detalle de pujas.

func RegisterStoreRoutes(r chi.Router, svc *Service, catalogSvc *catalog.Service, market MarketView, users UserDirectory) {
	h := handlerDeps{svc: svc, catalog: catalogSvc, market: market, users: users}

	r.Route("/store", func(sr chi.Router) {
		sr.Get("/", h.listStore())
		sr.Get("/{petID}", h.getStorePet())
	})
}

type auctionSummaryView struct {
	ID           string    `json:"id"`
	NumberOfBids int       `json:"number_of_bids"`
	StartPrice   float64   `json:"start_price"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Open         bool      `json:"open"`
}

type storePetResponse struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Age      int          `json:"age"`
	Status   string       `json:"status"`
	Price    float64      `json:"price"`
	Category categoryView `json:"category"`
	Tags     []tagView    `json:"tags"`
	Owner    ownerView    `json:"owner"`

	// false cuando no hay subasta, resumen cuando sí (mismo contrato que el front espera).
	IsForAuction any `json:"is_for_auction"`
}

func (h handlerDeps) listStore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.ListAvailable(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]storePetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, h.toStorePetResponse(r, p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h handlerDeps) getStorePet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil || !p.Available {
			// Las no disponibles no existen para el store.
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, h.toStorePetResponse(r, p))
	}
}

func (h handlerDeps) toStorePetResponse(r *http.Request, p Pet) storePetResponse {
	ctx := r.Context()

	resp := storePetResponse{
		ID:           p.ID,
		Name:         p.Name,
		Age:          p.Age,
		Status:       p.StatusLabel(),
		Price:        p.Price,
		Tags:         []tagView{},
		Owner:        h.ownerView(ctx, p.OwnerUserID),
		IsForAuction: false,
	}

	if c, err := h.catalog.GetCategory(ctx, p.CategoryID); err == nil {
		resp.Category = categoryView{ID: c.ID, Name: c.Name}
	} else {
		resp.Category = categoryView{ID: p.CategoryID}
	}

	if tags, err := h.catalog.GetTags(ctx, p.TagIDs); err == nil {
		for _, tg := range tags {
			resp.Tags = append(resp.Tags, tagView{ID: tg.ID, Name: tg.Name})
		}
	}

	if summary, ok, err := h.market.AuctionForPet(ctx, p.ID); err == nil && ok {
		resp.IsForAuction = auctionSummaryView{
			ID:           summary.ID,
			NumberOfBids: summary.NumberOfBids,
			StartPrice:   summary.StartPrice,
			StartDate:    summary.StartDate,
			EndDate:      summary.EndDate,
			Open:         summary.Open,
		}
	}

	return resp
}
