package users

import "fmt"

// Role es el tag que decide qué dashboard obtiene la sesión.
type Role int

const (
	RoleAdmin       Role = 0
	RoleRegularUser Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleRegularUser:
		return "User"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reporta si el código corresponde a un rol conocido.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRegularUser
}

// Credenciales de bootstrap. Documentadas, no secretas: siempre permiten entrar como Admin.
const (
	BootstrapUsername = "admin"
	BootstrapPassword = "admin123"
)

// User es una cuenta del sistema. Password se guarda en texto plano (sin hashing).
type User struct {
	Username string
	Password string
	Role     Role
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
