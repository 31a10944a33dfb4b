package entity

import "time"

// User representa un usuario del sistema. Su ID es el ownerId de todos sus
// items y movimientos (tenant de un solo usuario).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
