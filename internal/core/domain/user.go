package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the two recognised roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("user already exists")
var ErrSelfDelete = errors.New("cannot delete your own account")
var ErrSelfDemote = errors.New("cannot demote your own account")

// User models an account in the portfolio tracker. PasswordHash is excluded
// from JSON so every endpoint returns the public projection only.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
