package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"pgbee/config"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/infra/auth"
	"pgbee/internal/infra/cache"
	"pgbee/internal/mocks/memory"
	mockService "pgbee/internal/mocks/service"
	"pgbee/internal/usecase"
)

type authFixture struct {
	store   *memory.Store
	states  *cache.MemoryStateStore
	oauth   *mockService.MockOAuthService
	tokens  service.TokenService
	service usecase.AuthUsecase
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	store := memory.NewStore()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	oauth := mockService.NewMockOAuthService(t)
	logger := discardLogger()

	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "access-secret", Refresh: "refresh-secret", Session: "session"},
	}
	tokens, err := auth.NewJWTService(cfg, logger)
	require.NoError(t, err)
	states := cache.NewMemoryStateStore(time.Now)

	providers := []usecase.AuthProvider{
		NewLocalProvider(store.Users(), hasher),
		NewGoogleProvider(GoogleProviderParams{
			OAuthService: oauth,
			TxManager:    store.TransactionManager(),
			UserRepo:     store.Users(),
			Hasher:       hasher,
			Logger:       logger,
		}),
	}

	svc := NewAuthService(AuthServiceParams{
		Config:       cfg,
		TxManager:    store.TransactionManager(),
		UserRepo:     store.Users(),
		SessionRepo:  store.Sessions(),
		Hasher:       hasher,
		TokenService: tokens,
		OAuthService: oauth,
		StateStore:   states,
		Providers:    providers,
		Logger:       logger,
	})

	return &authFixture{store: store, states: states, oauth: oauth, tokens: tokens, service: svc}
}

func signupInput(email string) *usecase.SignupInput {
	return &usecase.SignupInput{
		Name:     "Asha",
		Email:    email,
		Password: "s3cret-pass",
		PhoneNo:  "9876543210",
		Role:     "student",
	}
}

func TestAuthService_Signup(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.service.Signup(ctx, signupInput("  Asha@Example.com "))
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"))
	assert.Equal(t, entity.RoleStudent, user.RoleName())

	stored, err := f.store.Users().FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.Equal(t, entity.RoleStudent, stored.RoleName())
}

func TestAuthService_Signup_DefaultRole(t *testing.T) {
	f := newAuthFixture(t)

	in := signupInput("norole@example.com")
	in.Role = ""

	user, err := f.service.Signup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.RoleName())
}

func TestAuthService_Signup_PasswordTooLong(t *testing.T) {
	f := newAuthFixture(t)

	in := signupInput("long@example.com")
	in.Password = strings.Repeat("x", 73)

	user, err := f.service.Signup(context.Background(), in)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Signup_ConcurrentDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	const attempts = 8

	var successes, dupes atomic.Int32

	var g errgroup.Group
	for range attempts {
		g.Go(func() error {
			_, err := f.service.Signup(ctx, signupInput("race@example.com"))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domainerrors.ErrDuplicateValue):
				dupes.Add(1)
			default:
				return err
			}

			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 1, successes.Load())
	assert.EqualValues(t, attempts-1, dupes.Load())
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, signupInput("login@example.com"))
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		out, err := f.service.Login(ctx, &usecase.LoginInput{Email: "LOGIN@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Tokens.AccessToken)
		assert.NotEmpty(t, out.Tokens.RefreshToken)
		assert.Equal(t, 1, f.store.SessionCount())

		claims, err := f.tokens.Verify(out.Tokens.AccessToken, entity.TokenKindAccess)
		require.NoError(t, err)
		assert.Equal(t, out.User.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		out, err := f.service.Login(ctx, &usecase.LoginInput{Email: "login@example.com", Password: "nope"})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		out, err := f.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "s3cret-pass"})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken_Rotates(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, signupInput("rotate@example.com"))
	require.NoError(t, err)
	first, err := f.service.Login(ctx, &usecase.LoginInput{Email: "rotate@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	second, err := f.service.RefreshToken(ctx, first.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.Tokens.RefreshToken, second.Tokens.RefreshToken)
	assert.Equal(t, 1, f.store.SessionCount())

	third, err := f.service.RefreshToken(ctx, second.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, second.Tokens.RefreshToken, third.Tokens.RefreshToken)
	assert.Equal(t, 1, f.store.SessionCount())
}

func TestAuthService_RefreshToken_ReplayRevokesAllSessions(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, signupInput("replay@example.com"))
	require.NoError(t, err)
	login := &usecase.LoginInput{Email: "replay@example.com", Password: "s3cret-pass"}
	first, err := f.service.Login(ctx, login)
	require.NoError(t, err)
	otherDevice, err := f.service.Login(ctx, login)
	require.NoError(t, err)

	rotated, err := f.service.RefreshToken(ctx, first.Tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, 2, f.store.SessionCount())

	_, err = f.service.RefreshToken(ctx, first.Tokens.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	assert.Zero(t, f.store.SessionCount())

	for _, token := range []string{rotated.Tokens.RefreshToken, otherDevice.Tokens.RefreshToken} {
		_, err = f.service.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, signupInput("kind@example.com"))
	require.NoError(t, err)
	out, err := f.service.Login(ctx, &usecase.LoginInput{Email: "kind@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = f.service.RefreshToken(ctx, out.Tokens.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, signupInput("bye@example.com"))
	require.NoError(t, err)
	out, err := f.service.Login(ctx, &usecase.LoginInput{Email: "bye@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, out.Tokens.RefreshToken))
	assert.Equal(t, 0, f.store.SessionCount())

	// Logging out twice, or without a token, is not an error.
	assert.NoError(t, f.service.Logout(ctx, out.Tokens.RefreshToken))
	assert.NoError(t, f.service.Logout(ctx, ""))

	_, err = f.service.RefreshToken(ctx, out.Tokens.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, signupInput("me@example.com"))
	require.NoError(t, err)
	out, err := f.service.Login(ctx, &usecase.LoginInput{Email: "me@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	user, err := f.service.Authenticate(ctx, out.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)

	_, err = f.service.Authenticate(ctx, out.Tokens.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	truncated := out.Tokens.AccessToken[:len(out.Tokens.AccessToken)-1]
	_, err = f.service.Authenticate(ctx, truncated)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_GoogleFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	var state string
	f.oauth.On("AuthCodeURL", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { state = args.String(0) }).
		Return("https://accounts.google.com/o/oauth2/auth?state=x").
		Twice()
	f.oauth.On("FetchProfile", ctx, "code-1").
		Return(&service.OAuthProfile{Email: "G.User@Example.com", Name: ""}, nil).
		Twice()

	url, err := f.service.GoogleAuthURL(ctx)
	require.NoError(t, err)
	assert.Contains(t, url, "accounts.google.com")
	require.NotEmpty(t, state)

	out, err := f.service.GoogleCallback(ctx, "code-1", state)
	require.NoError(t, err)
	assert.Equal(t, "g.user@example.com", out.User.Email)
	assert.Equal(t, "User", out.User.Name)
	assert.Equal(t, entity.RoleUser, out.User.RoleName())
	assert.NotEmpty(t, out.Tokens.RefreshToken)

	// The state is single use.
	_, err = f.service.GoogleCallback(ctx, "code-1", state)
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)

	// A second sign-in matches the provisioned account.
	_, err = f.service.GoogleAuthURL(ctx)
	require.NoError(t, err)
	again, err := f.service.GoogleCallback(ctx, "code-1", state)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, again.User.ID)
}

func TestAuthService_GoogleCallback_UnknownState(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.GoogleCallback(context.Background(), "code", "forged")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)

	_, err = f.service.GoogleCallback(context.Background(), "code", "")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
}

func TestAuthService_GoogleCallback_RejectsUnsignedState(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	var state string
	f.oauth.On("AuthCodeURL", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { state = args.String(0) }).
		Return("https://accounts.google.com/o/oauth2/auth").
		Once()

	_, err := f.service.GoogleAuthURL(ctx)
	require.NoError(t, err)

	nonce, mac, ok := strings.Cut(state, ".")
	require.True(t, ok)
	require.NotEmpty(t, nonce)
	require.NotEmpty(t, mac)

	// Present in the store but not signed with the session secret.
	require.NoError(t, f.states.Save(ctx, "planted", time.Minute))
	_, err = f.service.GoogleCallback(ctx, "code", "planted")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)

	_, err = f.service.GoogleCallback(ctx, "code", nonce+".tampered")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)

	// The rejected attempts leave the genuine state redeemable.
	ok, err = f.states.Consume(ctx, state)
	require.NoError(t, err)
	assert.True(t, ok)
}

// forbiddenTxManager fails the test if any repository work is attempted.
type forbiddenTxManager struct {
	t *testing.T
}

func (m forbiddenTxManager) Execute(context.Context, func(repository.RepositoryFactory) error) error {
	m.t.Error("repository must not be touched")

	return nil
}

func TestGoogleProvider_MissingEmailSkipsRepository(t *testing.T) {
	oauth := mockService.NewMockOAuthService(t)
	store := memory.NewStore()

	provider := NewGoogleProvider(GoogleProviderParams{
		OAuthService: oauth,
		TxManager:    forbiddenTxManager{t: t},
		UserRepo:     store.Users(),
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:       discardLogger(),
	})

	ctx := context.Background()
	oauth.On("FetchProfile", ctx, "code").Return(&service.OAuthProfile{Name: "No Mail"}, nil).Once()

	user, err := provider.Authenticate(ctx, &usecase.Credentials{Code: "code"})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrMissingProfileEmail)

	_, err = store.Users().FindByEmail(ctx, "")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestGoogleProvider_ExchangeFailure(t *testing.T) {
	oauth := mockService.NewMockOAuthService(t)

	provider := NewGoogleProvider(GoogleProviderParams{
		OAuthService: oauth,
		TxManager:    forbiddenTxManager{t: t},
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:       discardLogger(),
	})

	ctx := context.Background()
	oauth.On("FetchProfile", ctx, "bad").Return(nil, domainerrors.ErrOAuthFailed).Once()

	_, err := provider.Authenticate(ctx, &usecase.Credentials{Code: "bad"})
	assert.ErrorIs(t, err, domainerrors.ErrOAuthFailed)
}
