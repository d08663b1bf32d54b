package domain

import "time"

// Role describes what a user is allowed to do on the platform.
type Role string

const (
	RoleUser       Role = "USER"
	RoleStoreOwner Role = "STORE_OWNER"
	RoleAdmin      Role = "ADMIN"
)

// ParseRole maps a raw string onto a known role. Unknown values report false.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleUser, RoleStoreOwner, RoleAdmin:
		return Role(raw), true
	default:
		return "", false
	}
}

// IncludesOwnerProjection decides whether store listings built for this role
// carry the owning user's identity. Only admins see owner details; the choice
// is made here once so individual call sites cannot diverge.
func (r Role) IncludesOwnerProjection() bool {
	return r == RoleAdmin
}

// User represents a platform account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
