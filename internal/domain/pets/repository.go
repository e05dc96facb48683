package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	ListAvailable(ctx context.Context) ([]Pet, error)

	// Delete elimina la mascota y cascadea su subasta y pujas
	// (FK ON DELETE CASCADE en postgres, borrado explícito en memoria).
	Delete(ctx context.Context, id string) error
}
