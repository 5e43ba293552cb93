package pets

import "context"

// Repository direcciona mascotas por índice (0-based) en el orden del store.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Get(ctx context.Context, index int) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, index int, p Pet) error
	Delete(ctx context.Context, index int) error
	// FirstByName devuelve la primera mascota con ese nombre exacto y su índice.
	FirstByName(ctx context.Context, name string) (Pet, int, error)
}
