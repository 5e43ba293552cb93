// Package workflow implementa la sesión interactiva: menú principal, login y
// registro, y un dashboard por rol. Cada acción corre detrás de un boundary que
// imprime y loggea el error y devuelve el control al dashboard.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/input"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
)

// Services agrupa los casos de uso que consume el workflow.
type Services struct {
	Users        *users.Service
	Pets         *pets.Service
	Applications *applications.Service
}

type action struct {
	label string
	name  string // para logs
	run   func(ctx context.Context, s *session) error
}

type dashboard struct {
	title   string
	actions []action
}

type Engine struct {
	in  *input.Prompter
	out io.Writer
	log logger.Logger

	users *users.Service
	pets  *pets.Service
	apps  *applications.Service

	dashboards map[users.Role]dashboard
}

// session es el estado de un login exitoso.
type session struct {
	id   string
	user users.User
	log  logger.Logger
}

type state int

const (
	stateMainMenu state = iota
	stateLogin
	stateRegister
	stateExit
)

func New(in *input.Prompter, out io.Writer, svc Services, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{
		in:    in,
		out:   out,
		log:   log.With(map[string]any{"component": "workflow"}),
		users: svc.Users,
		pets:  svc.Pets,
		apps:  svc.Applications,
	}

	// Logout no está en la tabla: siempre es la última opción del dashboard.
	e.dashboards = map[users.Role]dashboard{
		users.RoleAdmin: {
			title: "ADMIN DASHBOARD",
			actions: []action{
				{label: "Add Another Admin", name: "add_admin", run: e.addAdmin},
				{label: "Manage User Accounts", name: "manage_users", run: e.manageUsers},
				{label: "Manage Pet Records", name: "manage_pets", run: e.managePets},
				{label: "Process Applications", name: "process_applications", run: e.processApplications},
				{label: "Search Pets", name: "search_pets", run: e.searchPets},
			},
		},
		users.RoleRegularUser: {
			title: "USER DASHBOARD",
			actions: []action{
				{label: "Browse Pets", name: "browse_pets", run: e.browsePets},
				{label: "Check Application Status", name: "check_status", run: e.checkStatus},
				{label: "View History", name: "view_history", run: e.viewHistory},
			},
		},
	}
	return e
}

// Run ejecuta la sesión hasta Exit o hasta que la entrada se cierre.
// Ningún error de una acción termina Run; solo devuelve error si ctx se cancela.
func (e *Engine) Run(ctx context.Context) error {
	st := stateMainMenu
	for st != stateExit {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.in.Closed() {
			e.log.Info("input closed, ending session", nil)
			return nil
		}

		switch st {
		case stateMainMenu:
			st = e.mainMenu()
		case stateLogin:
			if s, ok := e.login(ctx); ok {
				e.dashboard(ctx, s)
			}
			st = stateMainMenu
		case stateRegister:
			e.boundary(e.log, "register", e.register(ctx))
			e.pause()
			st = stateMainMenu
		}
	}
	return nil
}

func (e *Engine) mainMenu() state {
	e.printf("\n=== PET ADOPTION SYSTEM ===\n")
	e.printf("1. Login\n2. Register\n3. Exit\n")

	r := e.in.AcquireInt("Enter choice: ", 1, 3)
	switch {
	case r.Status == input.StatusClosed:
		return stateExit
	case !r.OK():
		return stateMainMenu
	}

	switch r.Value {
	case 1:
		return stateLogin
	case 2:
		return stateRegister
	default:
		e.printf("Exiting system...\n")
		return stateExit
	}
}

func (e *Engine) newSession(u users.User) *session {
	id := uuid.NewString()
	return &session{
		id:   id,
		user: u,
		log: e.log.With(map[string]any{
			"session_id": id,
			"username":   u.Username,
			"role":       u.Role.String(),
		}),
	}
}

func (e *Engine) dashboard(ctx context.Context, s *session) {
	d, ok := e.dashboards[s.user.Role]
	if !ok {
		s.log.Error("no dashboard for role", nil)
		return
	}
	logout := len(d.actions) + 1

	for {
		if ctx.Err() != nil {
			return
		}
		e.printf("\n==== %s ====\n", d.title)
		for i, a := range d.actions {
			e.printf("%d. %s\n", i+1, a.label)
		}
		e.printf("%d. Logout\n", logout)

		r := e.in.AcquireInt("Enter choice: ", 1, logout)
		if r.Status == input.StatusClosed {
			return
		}
		if !r.OK() {
			continue
		}
		if r.Value == logout {
			e.printf("Logging out...\n")
			s.log.Info("logout", nil)
			return
		}

		a := d.actions[r.Value-1]
		e.boundary(s.log, a.name, a.run(ctx, s))
		if e.in.Closed() {
			return
		}
		e.pause()
	}
}

// boundary corta la propagación: imprime un mensaje para el usuario y loggea.
func (e *Engine) boundary(log logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	fields := map[string]any{"action": name, "error": err.Error()}

	switch {
	case errors.Is(err, apperr.ErrCancelled),
		errors.Is(err, apperr.ErrTooManyAttempts),
		errors.Is(err, apperr.ErrInputClosed):
		log.Debug("action aborted", fields)
	case apperr.IsPersistence(err):
		log.Error("action failed to persist", fields)
	case apperr.Recoverable(err):
		log.Warn("action failed", fields)
	default:
		log.Error("unexpected action error", fields)
	}

	if msg := message(err); msg != "" {
		e.printf("%s\n", msg)
	}
}

// message traduce un error a texto de menú. Cancelaciones y reintentos agotados
// no agregan nada: el prompter ya informó.
func message(err error) string {
	var pe *apperr.PersistenceError
	switch {
	case errors.Is(err, apperr.ErrCancelled),
		errors.Is(err, apperr.ErrTooManyAttempts),
		errors.Is(err, apperr.ErrInputClosed):
		return ""
	case errors.As(err, &pe):
		return fmt.Sprintf("Could not save changes to %s; nothing was modified.", pe.Path)
	case errors.Is(err, users.ErrSelfDelete):
		return "You cannot delete the account you are logged in with."
	case errors.Is(err, applications.ErrDuplicatePending):
		return "You already have a pending application for this pet."
	case errors.Is(err, applications.ErrAlreadyDecided):
		return "Application was already processed."
	case errors.Is(err, pets.ErrAlreadyAdopted):
		return "Pet is already adopted."
	case errors.Is(err, apperr.ErrConflict):
		return "Username already exists!"
	case errors.Is(err, apperr.ErrNotFound):
		return "Record not found."
	case errors.Is(err, apperr.ErrInvalidInput):
		return "Invalid input."
	default:
		return "Unexpected error: " + err.Error()
	}
}

func (e *Engine) pause() {
	if !e.in.Closed() {
		e.in.Pause()
	}
}

func (e *Engine) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
