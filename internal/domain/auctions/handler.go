package auctions

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auctions", func(ar chi.Router) {
		ar.Post("/", createAuctionHandler(svc))
		ar.Get("/", listMyAuctionsHandler(svc))
		ar.Get("/{auctionID}", getAuctionHandler(svc))
		ar.Patch("/{auctionID}", updateAuctionHandler(svc))
		ar.Delete("/{auctionID}", deleteAuctionHandler(svc))
	})
}

type createAuctionRequest struct {
	PetID      string    `json:"pet_id"`
	StartPrice float64   `json:"start_price"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

type updateAuctionRequest struct {
	StartPrice *float64   `json:"start_price"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

type auctionResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	StartPrice float64   `json:"start_price"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Open       bool      `json:"open"` // derivado, nunca persistido
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func createAuctionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAuctionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			PetID:      req.PetID,
			StartPrice: req.StartPrice,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
		})
		if err != nil {
			writeAuctionError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAuctionResponse(a, svc.now()))
	}
}

func listMyAuctionsHandler(svc *Service) http.HandlerFunc {
	// Scoped al caller: subastas de mascotas que le pertenecen.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := svc.now()
		out := make([]auctionResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAuctionResponse(a, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAuctionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetOwned(r.Context(), claims.UserID, chi.URLParam(r, "auctionID"))
		if err != nil {
			http.Error(w, "auction not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAuctionResponse(a, svc.now()))
	}
}

func updateAuctionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAuctionRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "auctionID"), UpdateInput{
			StartPrice: req.StartPrice,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
		})
		if err != nil {
			writeAuctionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAuctionResponse(a, svc.now()))
	}
}

func deleteAuctionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "auctionID")); err != nil {
			writeAuctionError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeAuctionError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		http.Error(w, "auction not found", http.StatusNotFound)
	case ErrPetUnavailable, ErrPetAlreadyAuctioned, ErrInvalidInput:
		// Violaciones de regla de negocio: siempre error de cliente, nunca 500.
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAuctionResponse(a Auction, now time.Time) auctionResponse {
	return auctionResponse{
		ID:         a.ID,
		PetID:      a.PetID,
		StartPrice: a.StartPrice,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
		Open:       IsOpen(a, now),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// writeJSON se repite por módulo a propósito (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
