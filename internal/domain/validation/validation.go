// Package validation contiene los predicados puros que clasifican texto de entrada.
package validation

const (
	UsernameMinLen = 4
	UsernameMaxLen = 20
)

// IsValidUsername: 4-20 caracteres, letras/dígitos ASCII y espacios simples.
func IsValidUsername(s string) bool {
	if len(s) < UsernameMinLen || len(s) > UsernameMaxLen {
		return false
	}
	return isWords(s)
}

// IsValidName aplica la misma regla de caracteres que el username, sin límite de largo.
func IsValidName(s string) bool {
	return isWords(s)
}

func IsValidBreed(s string) bool {
	return isWords(s)
}

// IsValidPassword usa la política permisiva: cualquier valor no vacío.
func IsValidPassword(s string) bool {
	return s != ""
}

func isWords(s string) bool {
	if s == "" {
		return false
	}
	prevSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			if prevSpace {
				return false
			}
			prevSpace = true
			continue
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return false
		}
		prevSpace = false
	}
	return true
}
