package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailInUse = errors.New("email already in use")
var ErrInvalidRole = errors.New("invalid role")

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// User models an account held by the credential store. The password hash
// never leaves the process: every boundary returns the Public projection.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the client-safe account projection.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips secret fields from a User.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}
