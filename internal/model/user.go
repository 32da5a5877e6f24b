// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash is one-way (bcrypt) and must never be serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated representation of a user.
// It carries no secret material and is safe to embed in tokens and responses.
type Identity struct {
	UserID  string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// IdentityOf strips a User down to its Identity.
func IdentityOf(u *User) *Identity {
	return &Identity{
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}
