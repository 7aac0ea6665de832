package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User representa un usuario de la tienda (cliente o administrador).
type User struct {
	ID           string
	Email        string // único
	Username     string
	PasswordHash string // bcrypt
	Role         string // admin | customer
	CreatedAt    time.Time
}
