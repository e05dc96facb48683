package pets

import "context"

// OwnerOf expone el ownerUserID de una mascota.
// Se usa para evitar ciclos de imports entre módulos (pets <-> bids).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// PetForAuction devuelve lo mínimo que necesita el ciclo de vida de subastas:
// owner y flag de disponibilidad, releído contra el estado persistido.
func (s *Service) PetForAuction(ctx context.Context, petID string) (ownerUserID string, available bool, err error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", false, err
	}
	return p.OwnerUserID, p.Available, nil
}
