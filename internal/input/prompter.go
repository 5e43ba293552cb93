// Package input implementa la adquisición de valores validados con reintentos acotados.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultMaxAttempts = 3
	// Cancel es el escape: se devuelve sin validar en Acquire y AcquireSecret.
	Cancel = "0"
)

var (
	intPattern = regexp.MustCompile(`^\s*\d+\s*$`)
	agePattern = regexp.MustCompile(`^\s*(\d+)\s*(years?|months?)?\s*$`)
)

// Validator clasifica una línea cruda.
type Validator func(string) bool

// SecretReader lee un valor sin eco (password). Lo provee la capa de terminal.
type SecretReader interface {
	ReadSecret(prompt string) (string, error)
}

type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	secret      SecretReader
	maxAttempts int
	closed      bool
}

type Option func(*Prompter)

func WithSecretReader(sr SecretReader) Option {
	return func(p *Prompter) { p.secret = sr }
}

// WithMaxAttempts fija el presupuesto por defecto; valores < 1 se ignoran.
func WithMaxAttempts(n int) Option {
	return func(p *Prompter) {
		if n >= 1 {
			p.maxAttempts = n
		}
	}
}

func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Closed reporta si la entrada llegó a EOF.
func (p *Prompter) Closed() bool { return p.closed }

func (p *Prompter) MaxAttempts() int { return p.maxAttempts }

func (p *Prompter) readLine(prompt string) (string, bool) {
	if p.closed {
		return "", false
	}
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			p.closed = true
			fmt.Fprintln(p.out)
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (p *Prompter) readSecret(prompt string) (string, bool) {
	if p.secret == nil {
		return p.readLine(prompt)
	}
	if p.closed {
		return "", false
	}
	s, err := p.secret.ReadSecret(prompt)
	if err != nil {
		p.closed = true
		return "", false
	}
	return s, true
}

// Acquire usa el presupuesto por defecto.
func (p *Prompter) Acquire(prompt string, v Validator, errorMessage string) Result[string] {
	return p.AcquireN(prompt, v, errorMessage, p.maxAttempts)
}

// AcquireN muestra prompt, lee una línea y valida. "0" cancela sin validar.
// Tras maxAttempts fallos consecutivos devuelve StatusExhausted.
func (p *Prompter) AcquireN(prompt string, v Validator, errorMessage string, maxAttempts int) Result[string] {
	return p.acquire(p.readLine, prompt, v, errorMessage, maxAttempts)
}

// AcquireSecret es Acquire leyendo sin eco cuando hay SecretReader.
func (p *Prompter) AcquireSecret(prompt string, v Validator, errorMessage string) Result[string] {
	return p.acquire(p.readSecret, prompt, v, errorMessage, p.maxAttempts)
}

func (p *Prompter) acquire(read func(string) (string, bool), prompt string, v Validator, errorMessage string, maxAttempts int) Result[string] {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, ok := read(prompt)
		if !ok {
			return failure[string](StatusClosed)
		}
		if line == Cancel {
			return failure[string](StatusCancelled)
		}
		if v == nil || v(line) {
			return success(line)
		}
		if remaining := maxAttempts - attempt; remaining > 0 {
			fmt.Fprintf(p.out, "%s (%d attempts remaining, or '0' to cancel)\n", errorMessage, remaining)
		} else {
			fmt.Fprintln(p.out, errorMessage)
		}
	}
	fmt.Fprintln(p.out, "Too many failed attempts. Returning to menu.")
	return failure[string](StatusExhausted)
}

// AcquireInt usa el presupuesto por defecto.
func (p *Prompter) AcquireInt(prompt string, min, max int) Result[int] {
	return p.AcquireIntN(prompt, min, max, p.maxAttempts)
}

// AcquireIntN acepta un entero (con espacios alrededor) dentro de [min, max].
// Formato inválido o fuera de rango cuentan como intento fallido.
func (p *Prompter) AcquireIntN(prompt string, min, max, maxAttempts int) Result[int] {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, ok := p.readLine(prompt)
		if !ok {
			return failure[int](StatusClosed)
		}
		remaining := maxAttempts - attempt

		if !intPattern.MatchString(line) {
			fmt.Fprintf(p.out, "Invalid input format. Please enter a whole number between %d and %d (%d attempts left)\n", min, max, remaining)
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(p.out, "Invalid input. Please enter a number between %d and %d (%d attempts left)\n", min, max, remaining)
			continue
		}
		if n < min || n > max {
			fmt.Fprintf(p.out, "Please enter between %d and %d (%d attempts left)\n", min, max, remaining)
			continue
		}
		return success(n)
	}
	fmt.Fprintln(p.out, "Too many failed attempts. Operation cancelled.")
	return failure[int](StatusExhausted)
}

// ParseAge acepta "5", "3 years", "1 year", "6 months". Los meses se
// convierten con división entera por 12 (trunca: "6 months" -> 0).
func ParseAge(s string) (int, bool) {
	m := agePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(m[2], "month") {
		return n / 12, true
	}
	return n, true
}

// AcquireAge reintenta sin límite. Solo termina sin valor si la entrada se cierra;
// "0" es una edad válida, no un cancel.
func (p *Prompter) AcquireAge(prompt string) Result[int] {
	for {
		line, ok := p.readLine(prompt)
		if !ok {
			return failure[int](StatusClosed)
		}
		if age, valid := ParseAge(line); valid {
			return success(age)
		}
		fmt.Fprintln(p.out, "Invalid age format. Please enter like '2', '3 years', or '6 months'")
	}
}

// Pause espera Enter entre acciones.
func (p *Prompter) Pause() {
	_, _ = p.readLine("\nPress Enter to continue...")
}
