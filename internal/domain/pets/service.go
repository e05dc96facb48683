package pets

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
)

// References expone existencia de categorías/tags con tipos primitivos.
// Lo implementa catalog.Service; la interfaz vive acá para no acoplar el service.
type References interface {
	HasCategory(ctx context.Context, id string) (bool, error)
	HasTags(ctx context.Context, ids []string) (bool, error)
}

type Service struct {
	repo Repository
	refs References
	now  func() time.Time
}

func NewService(repo Repository, refs References) *Service {
	return &Service{
		repo: repo,
		refs: refs,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name       string
	Age        int
	Available  bool
	Price      float64
	CategoryID string
	TagIDs     []string
}

// Create: cualquier caller autenticado puede crear; el caller queda como owner.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.Price < 0 {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return Pet{}, ErrInvalidInput
	}

	ok, err := s.refs.HasCategory(ctx, in.CategoryID)
	if err != nil {
		return Pet{}, err
	}
	if !ok {
		return Pet{}, ErrInvalidInput
	}

	ok, err = s.refs.HasTags(ctx, in.TagIDs)
	if err != nil {
		return Pet{}, err
	}
	if !ok {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Age:         in.Age,
		Available:   in.Available,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		TagIDs:      in.TagIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name       *string
	Age        *int
	Available  *bool
	Price      *float64
	CategoryID *string
	TagIDs     *[]string
}

// Update: solo el owner, con lookup fresco del registro (sin cache).
func (s *Service) Update(ctx context.Context, petID, callerUserID string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	if p.OwnerUserID != callerUserID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.CategoryID != nil {
		ok, err := s.refs.HasCategory(ctx, *in.CategoryID)
		if err != nil {
			return Pet{}, err
		}
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.CategoryID = *in.CategoryID
	}
	if in.TagIDs != nil {
		ok, err := s.refs.HasTags(ctx, *in.TagIDs)
		if err != nil {
			return Pet{}, err
		}
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.TagIDs = *in.TagIDs
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete: solo el owner. El storage cascadea subasta y pujas.
func (s *Service) Delete(ctx context.Context, petID, callerUserID string) error {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return ErrNotFound
	}
	if p.OwnerUserID != callerUserID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, petID)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ListAvailable alimenta el store público (solo Available == true).
func (s *Service) ListAvailable(ctx context.Context) ([]Pet, error) {
	return s.repo.ListAvailable(ctx)
}
