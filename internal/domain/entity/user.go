package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleOperador  = "operador"
	RoleBodeguero = "bodeguero"
)

// User representa un usuario del sistema, anclado a una Location.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         string // admin, operador, bodeguero
	LocationID   string // ubicación asignada; vacío solo para admins sin sede fija
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff indica si el usuario puede operar sobre cualquier ubicación
// (seleccionando una ubicación activa por request).
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin
}
