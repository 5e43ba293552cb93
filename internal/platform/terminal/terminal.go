// Package terminal provee lectura de secretos sin eco sobre una TTY.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal implementa input.SecretReader sobre un file descriptor.
type Terminal struct {
	fd  int
	out io.Writer
}

func New(f *os.File, out io.Writer) *Terminal {
	return &Terminal{fd: int(f.Fd()), out: out}
}

// IsTerminal reporta si f es una TTY. Con stdin redirigido (pipe, archivo)
// no hay eco que ocultar y se usa la lectura de línea normal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (t *Terminal) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	b, err := term.ReadPassword(t.fd)
	// ReadPassword consume el Enter sin eco.
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(b), nil
}
