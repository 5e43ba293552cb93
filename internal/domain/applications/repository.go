package applications

import (
	"context"

	"pet-adoption/internal/domain/pets"
)

type Repository interface {
	// Create asigna el próximo ID y persiste la solicitud como Pending.
	Create(ctx context.Context, username, petName string) (Application, error)
	GetByID(ctx context.Context, id int) (Application, error)
	List(ctx context.Context) ([]Application, error)
	// Decide cambia el estado y, si approve, marca adoptada la primera mascota
	// con ese nombre, en la misma operación lógica.
	Decide(ctx context.Context, id int, approve bool) (Decision, error)
}

// PetLookup es lo único que applications necesita de pets (lo implementa *pets.Service).
type PetLookup interface {
	AvailableByName(ctx context.Context, name string) (pets.Pet, error)
}
