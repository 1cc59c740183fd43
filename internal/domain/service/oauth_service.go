package service

import (
	"context"
	"time"
)

// OAuthProfile is the identity a provider vouches for after the code exchange.
type OAuthProfile struct {
	ProviderUserID string
	Email          string
	Name           string
	EmailVerified  bool
	AvatarURL      string
}

// OAuthService drives the authorization-code flow against one provider.
type OAuthService interface {
	// AuthCodeURL returns the consent-page URL carrying state.
	AuthCodeURL(state string) string

	// FetchProfile exchanges code for a token and reads the user's profile.
	FetchProfile(ctx context.Context, code string) (*OAuthProfile, error)
}

// StateStore remembers issued OAuth states until they are consumed or expire.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error

	// Consume deletes state and reports whether it was present and unexpired.
	Consume(ctx context.Context, state string) (bool, error)
}
