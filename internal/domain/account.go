package domain

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// DefaultRole is assigned when registration omits a role.
const DefaultRole = RoleStudent

// ParseRole resolves a requested role, defaulting empty input to DefaultRole.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case "":
		return DefaultRole, true
	case RoleStudent, RoleFaculty, RoleAdmin:
		return Role(raw), true
	default:
		return "", false
	}
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	default:
		return false
	}
}

// Account is the durable identity record.
type Account struct {
	ID                 string
	FirstName          string
	LastName           string
	Email              string
	RegistrationNumber string
	PasswordDigest     string
	Role               Role
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PublicAccount is the projection of an Account that may leave the service.
// It never carries the password digest.
type PublicAccount struct {
	ID                 string
	FirstName          string
	LastName           string
	Email              string
	RegistrationNumber string
	Role               Role
}

// Public returns the outward projection of the account.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:                 a.ID,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Email:              a.Email,
		RegistrationNumber: a.RegistrationNumber,
		Role:               a.Role,
	}
}
