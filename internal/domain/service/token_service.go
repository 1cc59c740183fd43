package service

import (
	"time"

	"pgbee/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenService issues and verifies the signed access and refresh tokens.
type TokenService interface {
	IssueAccessToken(userID uuid.UUID, email string) (string, error)
	IssueRefreshToken(userID uuid.UUID, email string) (string, error)

	// Verify checks signature, expiry and kind. Every failure is reported as
	// domainerrors.ErrInvalidToken.
	Verify(token string, kind entity.TokenKind) (*entity.TokenClaims, error)

	RefreshTokenTTL() time.Duration
}
