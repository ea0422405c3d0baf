package auth

import (
	"context"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
)

// IdentityProvider is the remote identity service. It owns authoritative user
// records; everything the auth service holds locally is a cache of its result.
type IdentityProvider interface {
	// CreateUser registers a new account. Returns domain.ErrConflict when the
	// email is already registered.
	CreateUser(ctx context.Context, email, password, name, farmName string) (*domain.User, error)

	// Authenticate checks credentials. Returns domain.ErrAuthentication when
	// they do not match a stored record.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID fetches the current user record. Returns
	// domain.ErrUserNotFound for unknown ids.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// SendVerificationEmail asks the provider to (re)send the verification
	// mail. Fire and forget from the caller's perspective.
	SendVerificationEmail(ctx context.Context, userID string) error
}
