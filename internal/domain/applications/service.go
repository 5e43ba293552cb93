package applications

import (
	"context"
	"fmt"
	"strings"

	"pet-adoption/internal/platform/apperr"
)

var (
	ErrDuplicatePending = fmt.Errorf("pending application already exists: %w", apperr.ErrConflict)
	ErrAlreadyDecided   = fmt.Errorf("application already processed: %w", apperr.ErrBadState)
)

type Service struct {
	repo Repository
	pets PetLookup
}

func NewService(repo Repository, pets PetLookup) *Service {
	return &Service{repo: repo, pets: pets}
}

// Apply crea una solicitud Pending. La mascota (primer match por nombre) debe
// existir y no estar adoptada; después de creada, la referencia puede quedar colgante.
func (s *Service) Apply(ctx context.Context, username, petName string) (Application, error) {
	username = strings.TrimSpace(username)
	if username == "" || petName == "" {
		return Application{}, apperr.ErrInvalidInput
	}

	if _, err := s.pets.AvailableByName(ctx, petName); err != nil {
		return Application{}, err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return Application{}, err
	}
	for _, a := range items {
		if a.Pending() && a.ApplicantUsername == username && a.PetName == petName {
			return Application{}, ErrDuplicatePending
		}
	}

	return s.repo.Create(ctx, username, petName)
}

// Process aprueba o rechaza una solicitud Pending.
func (s *Service) Process(ctx context.Context, id int, approve bool) (Decision, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Decision{}, err
	}
	if !a.Pending() {
		return Decision{}, ErrAlreadyDecided
	}
	return s.repo.Decide(ctx, id, approve)
}

func (s *Service) Pending(ctx context.Context) ([]Application, error) {
	return s.filter(ctx, func(a Application) bool { return a.Pending() })
}

func (s *Service) ByApplicant(ctx context.Context, username string) ([]Application, error) {
	return s.filter(ctx, func(a Application) bool { return a.ApplicantUsername == username })
}

// History devuelve las solicitudes ya decididas del usuario.
func (s *Service) History(ctx context.Context, username string) ([]Application, error) {
	return s.filter(ctx, func(a Application) bool {
		return a.ApplicantUsername == username && !a.Pending()
	})
}

func (s *Service) filter(ctx context.Context, keep func(Application) bool) ([]Application, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Application, 0, len(items))
	for _, a := range items {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}
