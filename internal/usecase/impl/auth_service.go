// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"pgbee/config"
	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
	"pgbee/internal/util"
)

const (
	oauthStateTTL   = 10 * time.Minute
	oauthStateBytes = 32
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.RefreshSessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	oauthService service.OAuthService
	stateStore   service.StateStore
	providers    map[string]usecase.AuthProvider
	stateSecret  []byte
	now          func() time.Time
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Config       *config.Config
	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.RefreshSessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OAuthService service.OAuthService
	StateStore   service.StateStore
	Providers    []usecase.AuthProvider `group:"auth_providers"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	providers := make(map[string]usecase.AuthProvider, len(params.Providers))
	for _, p := range params.Providers {
		providers[p.Name()] = p
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		oauthService: params.OAuthService,
		stateStore:   params.StateStore,
		providers:    providers,
		stateSecret:  []byte(params.Config.SecretKey.Session),
		now:          time.Now,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a local account. The role is looked up or created, and a
// concurrent signup with the same email loses on the unique index.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	roleName := entity.NormalizeRoleName(input.Role)
	if roleName == "" {
		roleName = entity.RoleUser
	}

	srv.log(ctx).Info("Starting signup", slog.String("email", email), slog.String("role", roleName.String()))

	// bcrypt is CPU-bound, keep it out of the transaction.
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.NewValidationError("Password must be at most 72 bytes"), err.Error())
	}

	newUser := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PhoneNo:      strings.TrimSpace(input.PhoneNo),
		PasswordHash: hash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		role, err := ensureRole(ctx, repoFactory.NewRoleRepository(), roleName)
		if err != nil {
			return err
		}
		newUser.RoleID = role.ID
		newUser.Role = role

		return errors.Wrap(repoFactory.NewUserRepository().Create(ctx, newUser), "failed to create user")
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID))

	return newUser, nil
}

// Login authenticates through the local provider and opens a session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	provider, err := srv.provider(usecase.ProviderLocal)
	if err != nil {
		return nil, err
	}

	user, err := provider.Authenticate(ctx, &usecase.Credentials{
		Email:    normalizeEmail(input.Email),
		Password: input.Password,
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "login failed")
	}

	return srv.openSession(ctx, user)
}

// RefreshToken validates the presented refresh token against the allow-list,
// then replaces its session with a new one.
func (srv *authService) RefreshToken(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.Verify(refreshToken, entity.TokenKindRefresh)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token rejected")
	}

	var (
		output *usecase.AuthOutput
		reused bool
	)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessions := repoFactory.NewRefreshSessionRepository()
		oldHash := util.SHA256Hex(refreshToken)

		session, err := sessions.FindByHash(ctx, oldHash)
		if errors.Is(err, repository.ErrRefreshSessionNotFound) {
			reused = true

			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh session not found")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find refresh session")
		}
		if session.IsExpired(srv.now()) || session.UserID != claims.UserID {
			_ = sessions.DeleteByHash(ctx, oldHash)

			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh session expired")
		}

		user, err := repoFactory.NewUserRepository().FindByID(ctx, claims.UserID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token owner is gone")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		if err := sessions.DeleteByHash(ctx, oldHash); err != nil {
			return errors.Wrap(err, "failed to revoke rotated session")
		}

		output, err = srv.issueSession(ctx, sessions, user)

		return err
	})
	if reused {
		srv.revokeAll(ctx, claims.UserID)
	}
	if err != nil {
		srv.log(ctx).Warn("Token refresh failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute refresh transaction")
	}

	return output, nil
}

// revokeAll ends every session of userID. It runs when a correctly signed
// refresh token has no live row, meaning it was already rotated or logged out
// and is being replayed.
func (srv *authService) revokeAll(ctx context.Context, userID uuid.UUID) {
	if err := srv.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		srv.log(ctx).Error("Failed to revoke refresh sessions", slog.String("userID", userID.String()), slog.Any("error", err))

		return
	}

	srv.log(ctx).Warn("Refresh token replayed, all sessions revoked", slog.String("userID", userID.String()))
}

// Logout drops the refresh session. A token that is unknown, expired or
// malformed is not an error: the client is logged out either way.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := srv.sessionRepo.DeleteByHash(ctx, util.SHA256Hex(refreshToken))
	if err != nil && !errors.Is(err, repository.ErrRefreshSessionNotFound) {
		srv.log(ctx).Error("Failed to delete refresh session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh session")
	}

	srv.log(ctx).Info("Logged out")

	return nil
}

func (srv *authService) GoogleAuthURL(ctx context.Context) (string, error) {
	state, err := srv.newState()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate oauth state")
	}

	if err := srv.stateStore.Save(ctx, state, oauthStateTTL); err != nil {
		return "", errors.Wrap(err, "failed to store oauth state")
	}

	return srv.oauthService.AuthCodeURL(state), nil
}

// GoogleCallback consumes the CSRF state, then lets the google provider match
// or provision the account.
func (srv *authService) GoogleCallback(ctx context.Context, code, state string) (*usecase.AuthOutput, error) {
	if !srv.validState(state) {
		return nil, domainerrors.ErrOAuthStateInvalid
	}

	ok, err := srv.stateStore.Consume(ctx, state)
	if err != nil {
		return nil, errors.Wrap(err, "failed to consume oauth state")
	}
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrOAuthStateInvalid, "unknown or expired state")
	}

	provider, err := srv.provider(usecase.ProviderGoogle)
	if err != nil {
		return nil, err
	}

	user, err := provider.Authenticate(ctx, &usecase.Credentials{Code: code})
	if err != nil {
		srv.log(ctx).Warn("Google sign-in failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "google sign-in failed")
	}

	return srv.openSession(ctx, user)
}

// Authenticate resolves an access token. Any failure is an auth error.
func (srv *authService) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := srv.tokenService.Verify(accessToken, entity.TokenKindAccess)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token subject no longer exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return user, nil
}

func (srv *authService) openSession(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	output, err := srv.issueSession(ctx, srv.sessionRepo, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Session opened", slog.Any("userID", user.ID))

	return output, nil
}

func (srv *authService) issueSession(ctx context.Context, sessions repository.RefreshSessionRepository, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	if err := sessions.Create(ctx, &entity.RefreshSession{
		UserID:    user.ID,
		TokenHash: util.SHA256Hex(refreshToken),
		ExpiresAt: srv.now().Add(srv.tokenService.RefreshTokenTTL()),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh session")
	}

	return &usecase.AuthOutput{
		User: user,
		Tokens: entity.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (srv *authService) provider(name string) (usecase.AuthProvider, error) {
	p, ok := srv.providers[name]
	if !ok {
		return nil, errors.Errorf("auth provider %q is not registered", name)
	}

	return p, nil
}

// ensureRole looks the role up and creates it on first reference.
func ensureRole(ctx context.Context, roles repository.RoleRepository, name entity.RoleName) (*entity.Role, error) {
	role, err := roles.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, repository.ErrRoleNotFound) {
		return nil, errors.Wrap(err, "failed to find role")
	}

	role = &entity.Role{Name: name}
	if err := roles.Create(ctx, role); err != nil {
		return nil, errors.Wrap(err, "failed to create role")
	}

	return role, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newState returns "<nonce>.<mac>", the mac keyed with the session secret so
// forged states are rejected before the state store is consulted.
func (srv *authService) newState() (string, error) {
	buf := make([]byte, oauthStateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	nonce := base64.RawURLEncoding.EncodeToString(buf)

	return nonce + "." + srv.stateMAC(nonce), nil
}

func (srv *authService) validState(state string) bool {
	nonce, mac, ok := strings.Cut(state, ".")
	if !ok || nonce == "" || mac == "" {
		return false
	}

	return hmac.Equal([]byte(mac), []byte(srv.stateMAC(nonce)))
}

func (srv *authService) stateMAC(nonce string) string {
	h := hmac.New(sha256.New, srv.stateSecret)
	h.Write([]byte(nonce))

	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
