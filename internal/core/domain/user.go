package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// MinPasswordLength is the shortest password accepted at registration or change.
const MinPasswordLength = 6

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}

// User models an authenticated actor in the system.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email,omitempty" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	FirstName    string    `json:"firstName,omitempty" db:"first_name"`
	LastName     string    `json:"lastName,omitempty" db:"last_name"`
	Position     string    `json:"position,omitempty" db:"position"`
	Age          int       `json:"age,omitempty" db:"age"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}
