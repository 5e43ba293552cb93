package pets

import (
	"context"
	"fmt"

	"pet-adoption/internal/platform/apperr"
)

// ErrAlreadyAdopted se devuelve al intentar postular a una mascota adoptada.
var ErrAlreadyAdopted = fmt.Errorf("pet already adopted: %w", apperr.ErrBadState)

// AvailableByName resuelve por nombre (primer match) una mascota todavía disponible.
// Lo usa applications sin importar el repo de pets (evita ciclos de imports).
func (s *Service) AvailableByName(ctx context.Context, name string) (Pet, error) {
	p, _, err := s.repo.FirstByName(ctx, name)
	if err != nil {
		return Pet{}, err
	}
	if p.Adopted {
		return Pet{}, ErrAlreadyAdopted
	}
	return p, nil
}
