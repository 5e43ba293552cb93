package file

import (
	"context"
	"slices"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/apperr"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) valid(index int) bool {
	return index >= 0 && index < len(r.s.pets)
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev := slices.Clone(r.s.pets)
	r.s.pets = append(r.s.pets, p)
	if err := r.s.savePets(); err != nil {
		r.s.pets = prev
		return err
	}
	return nil
}

func (r *petRepo) Get(ctx context.Context, index int) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.valid(index) {
		return pets.Pet{}, apperr.ErrNotFound
	}
	return r.s.pets[index], nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return slices.Clone(r.s.pets), nil
}

func (r *petRepo) Update(ctx context.Context, index int, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.valid(index) {
		return apperr.ErrNotFound
	}

	prev := r.s.pets[index]
	r.s.pets[index] = p
	if err := r.s.savePets(); err != nil {
		r.s.pets[index] = prev
		return err
	}
	return nil
}

// Delete no borra solicitudes en cascada.
func (r *petRepo) Delete(ctx context.Context, index int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.valid(index) {
		return apperr.ErrNotFound
	}

	prev := slices.Clone(r.s.pets)
	r.s.pets = slices.Delete(r.s.pets, index, index+1)
	if err := r.s.savePets(); err != nil {
		r.s.pets = prev
		return err
	}
	return nil
}

func (r *petRepo) FirstByName(ctx context.Context, name string) (pets.Pet, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.firstPetByName(name)
	if i < 0 {
		return pets.Pet{}, -1, apperr.ErrNotFound
	}
	return r.s.pets[i], i, nil
}

// firstPetByName requiere mu tomado. Política explícita: primer match en orden del store.
func (s *Store) firstPetByName(name string) int {
	for i, p := range s.pets {
		if p.Name == name {
			return i
		}
	}
	return -1
}
