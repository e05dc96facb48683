package bids

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")

	ErrAuctionNotFound = errors.New("auction not found")

	// Reglas de negocio de la puja, en el orden en que se evalúan.
	ErrOwnBid          = errors.New("you can't bid on your own pet")
	ErrNoAuctionForPet = errors.New("there is no auction for this pet")
	ErrAuctionClosed   = errors.New("the auction is closed")
	ErrAlreadyBid      = errors.New("you already bid on this auction")
	ErrPriceBelowStart = errors.New("the price must be higher than the start price")
)

// AuctionSnapshot es la foto de la subasta contra la que se validan las reglas.
type AuctionSnapshot struct {
	ID         string
	PetID      string
	PetOwnerID string
	StartPrice float64
	EndDate    time.Time

	// PetStillListed indica que la referencia mascota->subasta sigue intacta
	// (defensa contra subastas borradas entre lookup y escritura).
	PetStillListed bool
}

// AuctionLookup lo implementa un adaptador en router sobre auctions + pets.
type AuctionLookup interface {
	AuctionSnapshot(ctx context.Context, auctionID string) (AuctionSnapshot, error)
	AuctionIDForPet(ctx context.Context, petID string) (auctionID string, ok bool, err error)
}

type Service struct {
	repo     Repository
	auctions AuctionLookup
	now      func() time.Time
}

func NewService(repo Repository, auctions AuctionLookup) *Service {
	return &Service{
		repo:     repo,
		auctions: auctions,
		now:      time.Now,
	}
}

type PlaceInput struct {
	AuctionID string
	Price     float64
}

// Place evalúa las reglas en secuencia y corta en la primera violación.
// El orden importa (los tests de contrato lo asumen):
//  1. el owner de la mascota no puede pujar
//  2. la mascota todavía tiene la subasta asociada
//  3. la subasta no venció (solo end_date: se aceptan pujas antes del inicio formal)
//  4. el bidder no pujó antes en esta subasta
//  5. el precio cubre el precio inicial (no el máximo actual: cada puja solo
//     compite contra start_price; decisión de producto heredada, no "arreglar")
func (s *Service) Place(ctx context.Context, bidderUserID string, in PlaceInput) (Bid, error) {
	if strings.TrimSpace(bidderUserID) == "" || strings.TrimSpace(in.AuctionID) == "" {
		return Bid{}, ErrInvalidInput
	}

	snap, err := s.auctions.AuctionSnapshot(ctx, in.AuctionID)
	if err != nil {
		return Bid{}, ErrAuctionNotFound
	}

	if snap.PetOwnerID == bidderUserID {
		return Bid{}, ErrOwnBid
	}
	if !snap.PetStillListed {
		return Bid{}, ErrNoAuctionForPet
	}
	if s.now().After(snap.EndDate) {
		return Bid{}, ErrAuctionClosed
	}
	exists, err := s.repo.ExistsForBidder(ctx, in.AuctionID, bidderUserID)
	if err != nil {
		return Bid{}, err
	}
	if exists {
		return Bid{}, ErrAlreadyBid
	}
	if in.Price < snap.StartPrice {
		return Bid{}, ErrPriceBelowStart
	}

	now := s.now()
	b := Bid{
		ID:           uuid.NewString(),
		AuctionID:    in.AuctionID,
		BidderUserID: bidderUserID,
		Price:        in.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Insert-or-fail: si dos requests del mismo bidder pasaron el chequeo 4
	// a la vez, la restricción del storage rechaza la segunda.
	if err := s.repo.Create(ctx, b); err != nil {
		return Bid{}, err
	}
	return b, nil
}

// Amend re-ejecuta las reglas 1, 3 y 5 (la puja ya existe, 2 y 4 no aplican)
// y sobreescribe el precio. Sin historial de enmiendas.
func (s *Service) Amend(ctx context.Context, callerUserID, bidID string, newPrice float64) (Bid, error) {
	b, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return Bid{}, ErrNotFound
	}
	if b.BidderUserID != callerUserID {
		return Bid{}, ErrForbidden
	}

	snap, err := s.auctions.AuctionSnapshot(ctx, b.AuctionID)
	if err != nil {
		return Bid{}, ErrAuctionNotFound
	}

	if snap.PetOwnerID == callerUserID {
		return Bid{}, ErrOwnBid
	}
	if s.now().After(snap.EndDate) {
		return Bid{}, ErrAuctionClosed
	}
	if newPrice < snap.StartPrice {
		return Bid{}, ErrPriceBelowStart
	}

	b.Price = newPrice
	b.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, b); err != nil {
		return Bid{}, err
	}
	return b, nil
}

func (s *Service) ListByBidder(ctx context.Context, bidderUserID string) ([]Bid, error) {
	return s.repo.ListByBidder(ctx, bidderUserID)
}

// ListForPet devuelve las pujas de la subasta de una mascota.
// Sin subasta => lista vacía, no error.
func (s *Service) ListForPet(ctx context.Context, petID string) ([]Bid, error) {
	auctionID, ok, err := s.auctions.AuctionIDForPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Bid{}, nil
	}
	return s.repo.ListByAuction(ctx, auctionID)
}

func (s *Service) ListByAuction(ctx context.Context, auctionID string) ([]Bid, error) {
	return s.repo.ListByAuction(ctx, auctionID)
}

func (s *Service) CountByAuction(ctx context.Context, auctionID string) (int, error) {
	return s.repo.CountByAuction(ctx, auctionID)
}
