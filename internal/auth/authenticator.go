package auth

import (
	"context"

	"github.com/mmynk/friendsmeet/internal/models"
)

// Authenticator registers accounts and checks their credentials. AuthService
// depends on this rather than on a concrete scheme.
type Authenticator interface {
	// Register creates an account. It fails with ErrEmailExists when the
	// normalized email is taken and ErrWeakPassword when credential is rejected.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account for email if credential matches, and
	// ErrInvalidCredentials otherwise. Store failures are returned wrapped.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	ValidateCredential(credential string) error
}
