package bids

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-marketplace/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// PetOwnership resuelve el owner de una mascota (lo implementa pets.Service).
type PetOwnership interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, pets PetOwnership) {
	r.Route("/bids", func(br chi.Router) {
		br.Post("/", placeBidHandler(svc))
		br.Get("/", listMyBidsHandler(svc))
		br.Patch("/{bidID}", amendBidHandler(svc))
	})

	// Pujas de una mascota: solo para el owner; anónimo ve lista vacía.
	r.Get("/pets/{petID}/bids", listPetBidsHandler(svc, pets))
}

type placeBidRequest struct {
	AuctionID string  `json:"auction_id"`
	Price     float64 `json:"price"`
}

type amendBidRequest struct {
	Price float64 `json:"price"`
}

type bidResponse struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auction_id"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func placeBidHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req placeBidRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Place(r.Context(), claims.UserID, PlaceInput{
			AuctionID: req.AuctionID,
			Price:     req.Price,
		})
		if err != nil {
			writeBidError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toBidResponse(b))
	}
}

func amendBidHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req amendBidRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Amend(r.Context(), claims.UserID, chi.URLParam(r, "bidID"), req.Price)
		if err != nil {
			writeBidError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBidResponse(b))
	}
}

func listMyBidsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByBidder(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]bidResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBidResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listPetBidsHandler(svc *Service, pets PetOwnership) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			// Anónimo: lista vacía, no error.
			writeJSON(w, http.StatusOK, []bidResponse{})
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := pets.OwnerOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListForPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]bidResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBidResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeBidError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		http.Error(w, "bid not found", http.StatusNotFound)
	case ErrAuctionNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	case ErrOwnBid, ErrNoAuctionForPet, ErrAuctionClosed, ErrAlreadyBid, ErrPriceBelowStart, ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toBidResponse(b Bid) bidResponse {
	return bidResponse{
		ID:        b.ID,
		AuctionID: b.AuctionID,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
