package auth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pgbee/config"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// tokenClaims is the wire form of a pgbee token.
type tokenClaims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// NewJWTService is the constructor for jwtService.
// Both secrets are required and must differ so a token of one kind can never
// verify as the other.
func NewJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	return newJWTService(cfg.SecretKey, logger, time.Now)
}

func newJWTService(keys config.SecretKeyConfig, logger *slog.Logger, now func() time.Time) (*jwtService, error) {
	if keys.Access == "" || keys.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if keys.Access == keys.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &jwtService{
		accessSecret:  []byte(keys.Access),
		refreshSecret: []byte(keys.Refresh),
		accessTTL:     accessTokenTTL,
		refreshTTL:    refreshTokenTTL,
		now:           now,
		logger:        logger,
	}, nil
}

func (s *jwtService) IssueAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.issue(userID, email, entity.TokenKindAccess)
}

func (s *jwtService) IssueRefreshToken(userID uuid.UUID, email string) (string, error) {
	return s.issue(userID, email, entity.TokenKindRefresh)
}

// Verify parses token with the secret belonging to kind.
func (s *jwtService) Verify(token string, kind entity.TokenKind) (*entity.TokenClaims, error) {
	secret, _, err := s.keyFor(kind)
	if err != nil {
		return nil, err
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		s.logger.Debug("token rejected", slog.String("kind", string(kind)), slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken
	}

	if claims.Type != string(kind) {
		s.logger.Debug("token kind mismatch", slog.String("want", string(kind)), slog.String("got", claims.Type))

		return nil, domainerrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}

	out := &entity.TokenClaims{
		UserID: userID,
		Email:  claims.Email,
		Kind:   kind,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

// RefreshTokenTTL returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) keyFor(kind entity.TokenKind) ([]byte, time.Duration, error) {
	switch kind {
	case entity.TokenKindAccess:
		return s.accessSecret, s.accessTTL, nil
	case entity.TokenKindRefresh:
		return s.refreshSecret, s.refreshTTL, nil
	default:
		return nil, 0, errors.Errorf("unknown token kind %q", kind)
	}
}

func (s *jwtService) issue(userID uuid.UUID, email string, kind entity.TokenKind) (string, error) {
	secret, ttl, err := s.keyFor(kind)
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := tokenClaims{
		Email: email,
		Type:  string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			// A fresh ID keeps two tokens issued in the same second distinct,
			// so rotated refresh tokens never collide on their stored hash.
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrapf(err, "sign %s token", kind)
	}

	return signed, nil
}
