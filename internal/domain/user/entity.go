// internal/domain/user/entity.go
package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleVendor     Role = "vendor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusBanned AccountStatus = "banned"
)

type User struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Role   Role          `json:"role"`
	Status AccountStatus `json:"status"`

	// Password is the stored hash; it must never leave the backend.
	// List projections exclude it unconditionally (see InternalFields).
	Password string `json:"-"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

var (
	ErrNotFound  = errors.New("user: not found")
	ErrInvalidID = errors.New("user: invalid id")
)

var SearchableFields = []string{"name", "email"}

// InternalFields are projected out of every list response unless the caller
// narrows the projection themselves (and even then the handler re-checks).
var InternalFields = []string{"password"}
