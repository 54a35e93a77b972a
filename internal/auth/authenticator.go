// Package auth registers users, checks their credentials and issues the
// bearer tokens that identify the acting user on every ledger call.
package auth

import (
	"context"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

// Authenticator verifies who is calling. Services depend on this interface so
// the credential scheme can change without touching them.
type Authenticator interface {
	// Register creates an account. The credential format depends on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user whose credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials that do not meet the scheme's rules.
	ValidateCredential(credential string) error
}

// UserStorage is the user persistence the authenticator needs.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
