package input

import "pet-adoption/internal/platform/apperr"

type Status int

const (
	StatusOK Status = iota
	// StatusCancelled: el usuario ingresó "0".
	StatusCancelled
	// StatusExhausted: se agotó el presupuesto de intentos.
	StatusExhausted
	// StatusClosed: la fuente de entrada llegó a EOF.
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCancelled:
		return "cancelled"
	case StatusExhausted:
		return "exhausted"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Result es el valor adquirido o la razón por la que no lo hay.
type Result[T any] struct {
	Value  T
	Status Status
}

func success[T any](v T) Result[T] { return Result[T]{Value: v, Status: StatusOK} }

func failure[T any](st Status) Result[T] { return Result[T]{Status: st} }

func (r Result[T]) OK() bool { return r.Status == StatusOK }

// Err mapea los estados no-OK a los errores de apperr, para cortar una acción
// multi-paso con un simple `if err := r.Err(); err != nil { return err }`.
func (r Result[T]) Err() error {
	switch r.Status {
	case StatusOK:
		return nil
	case StatusCancelled:
		return apperr.ErrCancelled
	case StatusExhausted:
		return apperr.ErrTooManyAttempts
	default:
		return apperr.ErrInputClosed
	}
}
