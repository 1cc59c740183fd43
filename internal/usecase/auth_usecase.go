// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"pgbee/internal/domain/entity"
)

// Identity sources registered with the auth service.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a local account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	PhoneNo  string
	Role     string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// Credentials carries whatever one AuthProvider needs to vouch for a user.
// The local provider reads Email and Password, the google provider reads Code.
type Credentials struct {
	Email    string
	Password string
	Code     string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user with a fresh token pair.
type AuthOutput struct {
	User   *entity.User
	Tokens entity.TokenPair
}

// AuthProvider resolves credentials from one identity source to a local user.
type AuthProvider interface {
	Name() string
	Authenticate(ctx context.Context, creds *Credentials) (*entity.User, error)
}

// AuthUsecase defines authentication and session operations.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// RefreshToken rotates the refresh session and issues a new pair.
	RefreshToken(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the refresh session. Unknown tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error

	// GoogleAuthURL stores a fresh CSRF state and returns the consent URL.
	GoogleAuthURL(ctx context.Context) (string, error)
	GoogleCallback(ctx context.Context, code, state string) (*AuthOutput, error)

	// Authenticate resolves an access token to the user it was issued for.
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}
