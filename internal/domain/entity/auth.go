package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes access from refresh tokens. Each kind is signed
// with its own secret.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the decoded identity carried by a verified token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is what a successful login, refresh or OAuth callback hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshSession is the server-side allow-list entry for a refresh token.
// Only the SHA-256 of the raw token is stored.
type RefreshSession struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session is no longer usable at now.
func (s *RefreshSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
