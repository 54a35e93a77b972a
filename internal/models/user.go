package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
//
// The ledger only needs ID and Name; the remaining fields belong to
// registration and login.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name shown in balances and expense views.
	Name string

	// Email is the user's login address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// It is produced by auth.HashPassword before the user reaches the store.
	PasswordHash string

	// IsActive is false for disabled accounts.
	IsActive bool

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser builds an active user with a fresh ID and timestamps.
// passwordHash must already be hashed.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UserRef is the minimal identity carried in derived views.
type UserRef struct {
	ID   string
	Name string
}
