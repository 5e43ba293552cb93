package file

import (
	"context"
	"slices"

	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/platform/apperr"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) index(username string) int {
	for i, u := range r.s.users {
		if u.Username == username {
			return i
		}
	}
	return -1
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u.Username == "" {
		return apperr.ErrInvalidInput
	}
	if r.index(u.Username) >= 0 {
		return apperr.ErrConflict
	}

	prev := slices.Clone(r.s.users)
	r.s.users = append(r.s.users, u)
	if err := r.s.saveUsers(); err != nil {
		r.s.users = prev
		return err
	}
	return nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(username)
	if i < 0 {
		return users.User{}, apperr.ErrNotFound
	}
	return r.s.users[i], nil
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return slices.Clone(r.s.users), nil
}

func (r *userRepo) Update(ctx context.Context, username, newUsername, newPassword string) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(username)
	if i < 0 {
		return users.User{}, apperr.ErrNotFound
	}
	if newUsername == "" {
		return users.User{}, apperr.ErrInvalidInput
	}
	if newUsername != username && r.index(newUsername) >= 0 {
		return users.User{}, apperr.ErrConflict
	}

	prev := slices.Clone(r.s.users)
	r.s.users[i].Username = newUsername
	r.s.users[i].Password = newPassword
	if err := r.s.saveUsers(); err != nil {
		r.s.users = prev
		return users.User{}, err
	}
	return r.s.users[i], nil
}

func (r *userRepo) Delete(ctx context.Context, username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.index(username)
	if i < 0 {
		return apperr.ErrNotFound
	}

	prev := slices.Clone(r.s.users)
	r.s.users = slices.Delete(r.s.users, i, i+1)
	if err := r.s.saveUsers(); err != nil {
		r.s.users = prev
		return err
	}
	return nil
}
