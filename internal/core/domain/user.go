package domain

import (
	"errors"
	"strings"
	"time"
)

// Role controls permissions. owner > employee > buyer.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
	RoleBuyer    Role = "buyer"
)

// permittedCargos is the fixed set of job titles an employee may hold.
var permittedCargos = []string{"Gerente", "Repositor", "Atendente"}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrMissingFields = errors.New("missing required fields")
var ErrInvalidCargo = errors.New("invalid cargo")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrRateLimited = errors.New("too many attempts")

// User models an account in the store.
type User struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	Nome     string    `json:"nome" bson:"nome"`
	Email    string    `json:"email" bson:"email"`
	Password string    `json:"-" bson:"password"`
	Role     Role      `json:"role" bson:"role"`
	Cargo    string    `json:"cargo,omitempty" bson:"cargo,omitempty"`
	CriadoEm time.Time `json:"criadoEm" bson:"criadoEm"`
}

// IsValid reports whether r is one of the three known roles.
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleEmployee || r == RoleBuyer
}

// IsStaff reports whether r may manage the catalog.
func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleEmployee
}

// PermittedCargos returns the fixed set of employee job titles.
func PermittedCargos() []string {
	out := make([]string, len(permittedCargos))
	copy(out, permittedCargos)
	return out
}

// NormalizeCargo matches cargo case-insensitively against the permitted set
// and returns the canonical spelling, or "" when there is no match.
func NormalizeCargo(cargo string) string {
	v := strings.ToLower(strings.TrimSpace(cargo))
	if v == "" {
		return ""
	}
	for _, p := range permittedCargos {
		if strings.ToLower(p) == v {
			return p
		}
	}
	return ""
}

// ValidateRoleCargo applies the cross-field rule shared by user create and
// update: an employee must hold a permitted cargo, everyone else holds none.
// It returns the cargo to store.
func ValidateRoleCargo(role Role, cargo string) (string, error) {
	normalized := NormalizeCargo(cargo)
	if role == RoleEmployee {
		if normalized == "" {
			return "", ErrInvalidCargo
		}
		return normalized, nil
	}
	return "", nil
}

// NormalizeEmail lowercases and trims an email address. Uniqueness itself is
// enforced by the credential store's index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
