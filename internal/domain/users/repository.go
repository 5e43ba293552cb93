package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	// Update reemplaza username y password de la cuenta identificada por username.
	Update(ctx context.Context, username, newUsername, newPassword string) (User, error)
	Delete(ctx context.Context, username string) error
}
