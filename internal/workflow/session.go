package workflow

import (
	"context"
	"errors"

	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/domain/validation"
)

// login recorre LoginRoleSelect y pide credenciales. Un login fallido ofrece
// reintentar desde la selección de rol.
func (e *Engine) login(ctx context.Context) (*session, bool) {
	for {
		e.printf("\n=== LOGIN ===\n")
		e.printf("Select role:\n1. Admin\n2. User\n0. Back to main menu\n")

		rc := e.in.AcquireInt("Enter choice: ", 0, 2)
		if !rc.OK() || rc.Value == 0 {
			return nil, false
		}
		role := users.RoleRegularUser
		if rc.Value == 1 {
			role = users.RoleAdmin
		}

		name := e.in.Acquire("Username (or '0' to cancel): ", validation.IsValidUsername, "Invalid username format")
		if !name.OK() {
			return nil, false
		}
		pwd := e.in.AcquireSecret("Password (or '0' to cancel): ", validation.IsValidPassword, "Invalid password")
		if !pwd.OK() {
			return nil, false
		}

		u, err := e.users.Authenticate(ctx, role, name.Value, pwd.Value)
		if err == nil {
			s := e.newSession(u)
			breakGlass := role == users.RoleAdmin && users.IsBreakGlass(name.Value, pwd.Value)
			if breakGlass {
				e.printf("\nDefault admin login successful!\n")
			} else {
				e.printf("\nLogin successful!\n")
			}
			s.log.Info("login", map[string]any{"break_glass": breakGlass})
			return s, true
		}

		if !errors.Is(err, users.ErrInvalidCredentials) {
			e.boundary(e.log, "login", err)
			return nil, false
		}

		e.log.Warn("login failed", map[string]any{"username": name.Value, "role": role.String()})
		e.printf("\nInvalid credentials or role mismatch.\n1. Try again\n0. Back to menu\n")
		again := e.in.AcquireInt("Enter choice: ", 0, 1)
		if !again.OK() || again.Value == 0 {
			return nil, false
		}
	}
}

// register da de alta un RegularUser. Un username tomado ofrece elegir otro
// antes de pedir el password.
func (e *Engine) register(ctx context.Context) error {
	e.printf("\n=== REGISTRATION ===\n")
	e.printf("Note: Only regular user registration is allowed\n")
	e.printf("Admin accounts must be created by system administrators\n\n")

	for {
		name := e.in.Acquire("Enter username (4-20 alphanumeric chars, '0' to cancel): ",
			validation.IsValidUsername, "Invalid username format")
		if err := name.Err(); err != nil {
			return err
		}

		taken, err := e.users.Exists(ctx, name.Value)
		if err != nil {
			return err
		}
		if taken {
			e.printf("Username already exists!\n1. Try another username\n0. Back to menu\n")
			c := e.in.AcquireInt("Enter choice: ", 0, 1)
			if err := c.Err(); err != nil {
				return err
			}
			if c.Value == 1 {
				continue
			}
			return nil
		}

		pwd := e.in.AcquireSecret("Enter password: ", validation.IsValidPassword, "Invalid password")
		if err := pwd.Err(); err != nil {
			return err
		}

		u, err := e.users.Register(ctx, name.Value, pwd.Value)
		if err != nil {
			return err
		}
		e.printf("Registration successful!\n")
		e.log.Info("user registered", map[string]any{"username": u.Username})
		return nil
	}
}
