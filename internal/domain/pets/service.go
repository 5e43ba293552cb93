package pets

import (
	"context"

	"pet-adoption/internal/domain/validation"
	"pet-adoption/internal/platform/apperr"
)

const MaxAge = 30

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name       string
	Breed      string
	Age        int
	Vaccinated bool
}

func (s *Service) Add(ctx context.Context, in CreateInput) (Pet, error) {
	if !validation.IsValidName(in.Name) || !validation.IsValidBreed(in.Breed) {
		return Pet{}, apperr.ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, apperr.ErrInvalidInput
	}

	p := Pet{
		Name:       in.Name,
		Breed:      in.Breed,
		Age:        in.Age,
		Vaccinated: in.Vaccinated,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// EditInput usa punteros: nil = no tocar.
// Adopted no es editable; solo lo cambia la aprobación de una solicitud.
type EditInput struct {
	Name       *string
	Breed      *string
	Age        *int
	Vaccinated *bool
}

func (s *Service) Edit(ctx context.Context, index int, in EditInput) (Pet, error) {
	p, err := s.repo.Get(ctx, index)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if !validation.IsValidName(*in.Name) {
			return Pet{}, apperr.ErrInvalidInput
		}
		p.Name = *in.Name
	}
	if in.Breed != nil {
		if !validation.IsValidBreed(*in.Breed) {
			return Pet{}, apperr.ErrInvalidInput
		}
		p.Breed = *in.Breed
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, apperr.ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Vaccinated != nil {
		p.Vaccinated = *in.Vaccinated
	}

	if err := s.repo.Update(ctx, index, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete no toca las solicitudes que referencian la mascota.
func (s *Service) Delete(ctx context.Context, index int) (Pet, error) {
	p, err := s.repo.Get(ctx, index)
	if err != nil {
		return Pet{}, err
	}
	if err := s.repo.Delete(ctx, index); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, f Filter) ([]Pet, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(items, f), nil
}

func (s *Service) Available(ctx context.Context) ([]Pet, error) {
	return s.Search(ctx, Available())
}
