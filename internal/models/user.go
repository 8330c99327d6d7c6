package models

import (
	"regexp"
	"strings"
	"time"
)

// UserRole represents the portal roles.
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleSupervisor UserRole = "supervisor"
	RoleAdmin      UserRole = "admin"
)

// Valid reports whether the role is one of the defined portal roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// User represents a portal account stored in the users table. Location is
// meaningful only for supervisors and kept empty otherwise.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	Location     string    `db:"location" json:"location"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

var emailLocalPart = regexp.MustCompile(`^[\w.\-]+$`)

// ValidInstitutionalEmail reports whether email belongs to the institutional
// domain (suffix includes the leading "@"). Checked before any store access.
func ValidInstitutionalEmail(email, domainSuffix string) bool {
	if !strings.HasSuffix(email, domainSuffix) {
		return false
	}
	local := strings.TrimSuffix(email, domainSuffix)
	return emailLocalPart.MatchString(local)
}
