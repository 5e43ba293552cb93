// Package apperr define los tipos de error compartidos entre dominio, storage y workflow.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrBadState        = errors.New("invalid state")
	ErrForbidden       = errors.New("forbidden")
	ErrCancelled       = errors.New("cancelled")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrInputClosed     = errors.New("input closed")
)

// PersistenceError indica que un archivo de datos no se pudo leer o escribir.
type PersistenceError struct {
	Op   string // "load" | "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence reporta si err (o alguno envuelto) es un *PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// Recoverable reporta si el error debe abortar solo la acción actual.
// Todo error de este paquete lo es; un error desconocido también se trata
// como recuperable en el workflow, pero se loggea como inesperado.
func Recoverable(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrBadState),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrCancelled),
		errors.Is(err, ErrTooManyAttempts),
		IsPersistence(err):
		return true
	default:
		return false
	}
}
