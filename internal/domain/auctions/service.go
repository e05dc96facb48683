package auctions

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

	// ErrPetUnavailable cubre el predicado completo de create/update/delete:
	// mascota disponible Y caller == owner. Mismo mensaje para ambos casos.
	ErrPetUnavailable = errors.New("pet is not available or you are not the owner")

	// ErrPetAlreadyAuctioned surge de la restricción de unicidad del storage.
	ErrPetAlreadyAuctioned = errors.New("this pet already has an auction")
)

// PetGate relee el estado persistido de la mascota al momento de cada mutación.
// Lo implementa pets.Service (ver pets/ownership.go); tipos primitivos para evitar ciclos.
type PetGate interface {
	PetForAuction(ctx context.Context, petID string) (ownerUserID string, available bool, err error)
}

type Service struct {
	repo Repository
	pets PetGate
	now  func() time.Time
}

func NewService(repo Repository, pets PetGate) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID      string
	StartPrice float64
	StartDate  time.Time
	EndDate    time.Time
}

func (s *Service) Create(ctx context.Context, callerUserID string, in CreateInput) (Auction, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return Auction{}, ErrInvalidInput
	}
	if in.StartPrice < 0 {
		return Auction{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return Auction{}, ErrInvalidInput
	}

	if err := s.checkPet(ctx, in.PetID, callerUserID); err != nil {
		return Auction{}, err
	}

	now := s.now()
	a := Auction{
		ID:         uuid.NewString(),
		PetID:      in.PetID,
		StartPrice: in.StartPrice,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// La unicidad (una subasta por mascota) la garantiza el storage,
	// no un chequeo previo: dos creates concurrentes no pueden colarse.
	if err := s.repo.Create(ctx, a); err != nil {
		return Auction{}, err
	}
	return a, nil
}

type UpdateInput struct {
	// Punteros: nil = no tocar. El binding a la mascota es inmutable.
	StartPrice *float64
	StartDate  *time.Time
	EndDate    *time.Time
}

// Update re-chequea el predicado contra la mascota ACTUAL de la subasta,
// no contra una mascota declarada en el payload.
func (s *Service) Update(ctx context.Context, callerUserID, auctionID string, in UpdateInput) (Auction, error) {
	a, err := s.repo.GetByID(ctx, auctionID)
	if err != nil {
		return Auction{}, ErrNotFound
	}

	if err := s.checkPet(ctx, a.PetID, callerUserID); err != nil {
		return Auction{}, err
	}

	if in.StartPrice != nil {
		if *in.StartPrice < 0 {
			return Auction{}, ErrInvalidInput
		}
		a.StartPrice = *in.StartPrice
	}
	if in.StartDate != nil {
		a.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		a.EndDate = *in.EndDate
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Auction{}, err
	}
	return a, nil
}

// Delete: mismo predicado que create (mascota disponible + caller owner).
func (s *Service) Delete(ctx context.Context, callerUserID, auctionID string) error {
	a, err := s.repo.GetByID(ctx, auctionID)
	if err != nil {
		return ErrNotFound
	}

	if err := s.checkPet(ctx, a.PetID, callerUserID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, auctionID)
}

// GetOwned devuelve la subasta solo si la mascota es del caller (404 si no).
func (s *Service) GetOwned(ctx context.Context, callerUserID, auctionID string) (Auction, error) {
	a, err := s.repo.GetByID(ctx, auctionID)
	if err != nil {
		return Auction{}, ErrNotFound
	}

	owner, _, err := s.pets.PetForAuction(ctx, a.PetID)
	if err != nil || owner != callerUserID {
		return Auction{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Auction, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ForPet expone la subasta de una mascota (ErrNotFound si no tiene).
func (s *Service) ForPet(ctx context.Context, petID string) (Auction, error) {
	a, err := s.repo.GetByPetID(ctx, petID)
	if err != nil {
		return Auction{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, auctionID string) (Auction, error) {
	a, err := s.repo.GetByID(ctx, auctionID)
	if err != nil {
		return Auction{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) checkPet(ctx context.Context, petID, callerUserID string) error {
	owner, available, err := s.pets.PetForAuction(ctx, petID)
	if err != nil {
		return ErrNotFound
	}
	if !available || owner != callerUserID {
		return ErrPetUnavailable
	}
	return nil
}
