package users

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pet-adoption/internal/domain/validation"
	"pet-adoption/internal/platform/apperr"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials or role mismatch: %w", apperr.ErrForbidden)
	ErrSelfDelete         = fmt.Errorf("cannot delete the account in use: %w", apperr.ErrForbidden)
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register crea una cuenta RegularUser. El registro nunca crea admins.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	return s.create(ctx, username, password, RoleRegularUser)
}

// CreateAdmin es la alta de admins emitida por otro admin.
func (s *Service) CreateAdmin(ctx context.Context, username, password string) (User, error) {
	return s.create(ctx, username, password, RoleAdmin)
}

func (s *Service) create(ctx context.Context, username, password string, role Role) (User, error) {
	if !validation.IsValidUsername(username) || !validation.IsValidPassword(password) {
		return User{}, apperr.ErrInvalidInput
	}
	u := User{Username: username, Password: password, Role: role}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Exists permite al workflow rechazar un username tomado antes de pedir el password.
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// IsBreakGlass reporta si el par coincide con la credencial de bootstrap.
func IsBreakGlass(username, password string) bool {
	return username == BootstrapUsername && password == BootstrapPassword
}

// Authenticate compara exacto (case-sensitive) contra el password guardado y exige
// que el rol coincida con el elegido.
//
// Para RoleAdmin la credencial de bootstrap siempre entra, aunque la cuenta se
// haya editado; si fue borrada se recrea. Si el username "admin" quedó tomado por
// un RegularUser, se devuelve una identidad admin solo de sesión, sin persistir.
func (s *Service) Authenticate(ctx context.Context, role Role, username, password string) (User, error) {
	if role == RoleAdmin && IsBreakGlass(username, password) {
		return s.breakGlass(ctx)
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if u.Role != role || u.Password != password {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) breakGlass(ctx context.Context) (User, error) {
	u, err := s.repo.GetByUsername(ctx, BootstrapUsername)
	if err == nil {
		if u.IsAdmin() {
			return u, nil
		}
		return User{Username: BootstrapUsername, Password: BootstrapPassword, Role: RoleAdmin}, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return User{}, err
	}

	u = User{Username: BootstrapUsername, Password: BootstrapPassword, Role: RoleAdmin}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// List devuelve las cuentas ordenadas por username.
func (s *Service) List(ctx context.Context) ([]User, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Username < items[j].Username
	})
	return items, nil
}

func (s *Service) Rename(ctx context.Context, username, newUsername string) (User, error) {
	if !validation.IsValidUsername(newUsername) {
		return User{}, apperr.ErrInvalidInput
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	if newUsername == username {
		return u, nil
	}
	return s.repo.Update(ctx, username, newUsername, u.Password)
}

func (s *Service) ChangePassword(ctx context.Context, username, newPassword string) (User, error) {
	if !validation.IsValidPassword(newPassword) {
		return User{}, apperr.ErrInvalidInput
	}
	return s.repo.Update(ctx, username, username, newPassword)
}

// Delete borra la cuenta username. actor es quien ejecuta la acción.
func (s *Service) Delete(ctx context.Context, actor, username string) error {
	if actor == username {
		return ErrSelfDelete
	}
	return s.repo.Delete(ctx, username)
}
