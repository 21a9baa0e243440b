// Package model defines domain entities for the application.
package model

import "time"

// User is a registered member who can post skills and comments.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the public projection of a user embedded in other entities.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Identity is the authenticated principal resolved from a verified credential.
// It is injected into the request context by the auth middleware.
type Identity struct {
	UserID int64
	Email  string
}
