package impl

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

const (
	provisionedPasswordBytes = 24
	defaultProvisionedName   = "User"
)

// localProvider authenticates email and password against the credential store.
type localProvider struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
}

// NewLocalProvider registers the email/password identity source.
func NewLocalProvider(userRepo repository.UserRepository, hasher service.PasswordHasher) usecase.AuthProvider {
	return &localProvider{userRepo: userRepo, hasher: hasher}
}

func (p *localProvider) Name() string { return usecase.ProviderLocal }

// Authenticate reports an unknown email and a wrong password identically.
func (p *localProvider) Authenticate(ctx context.Context, creds *usecase.Credentials) (*entity.User, error) {
	user, err := p.userRepo.FindByEmail(ctx, creds.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !p.hasher.Check(creds.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return user, nil
}

// googleProvider matches a Google profile to a local user by email, creating
// the account on first sign-in.
type googleProvider struct {
	oauthService service.OAuthService
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	logger       *slog.Logger
}

// GoogleProviderParams holds dependencies for the google provider, injected by Fx.
type GoogleProviderParams struct {
	fx.In

	OAuthService service.OAuthService
	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	Logger       *slog.Logger
}

// NewGoogleProvider registers the Google identity source.
func NewGoogleProvider(params GoogleProviderParams) usecase.AuthProvider {
	return &googleProvider{
		oauthService: params.OAuthService,
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		logger:       params.Logger,
	}
}

func (p *googleProvider) Name() string { return usecase.ProviderGoogle }

func (p *googleProvider) Authenticate(ctx context.Context, creds *usecase.Credentials) (*entity.User, error) {
	profile, err := p.oauthService.FetchProfile(ctx, creds.Code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch google profile")
	}

	email := normalizeEmail(profile.Email)
	if email == "" {
		return nil, domainerrors.ErrMissingProfileEmail
	}

	var user *entity.User
	err = p.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		users := repoFactory.NewUserRepository()

		existing, err := users.FindByEmail(ctx, email)
		if err == nil {
			user = existing

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by email")
		}

		user, err = p.provision(ctx, repoFactory, profile.Name, email)

		return err
	})
	if errors.Is(err, domainerrors.ErrDuplicateValue) {
		// Another callback provisioned the same email first.
		user, err = p.userRepo.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve google user")
	}

	return user, nil
}

func (p *googleProvider) provision(ctx context.Context, repoFactory repository.RepositoryFactory, name, email string) (*entity.User, error) {
	deliverycontext.GetLoggerOrDefault(ctx, p.logger).Info("Provisioning account for Google user", slog.String("email", email))

	role, err := ensureRole(ctx, repoFactory.NewRoleRepository(), entity.RoleUser)
	if err != nil {
		return nil, err
	}

	secret := make([]byte, provisionedPasswordBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(err, "failed to generate password")
	}
	hash, err := p.hasher.Hash(base64.RawStdEncoding.EncodeToString(secret))
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash generated password")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultProvisionedName
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		Role:         role,
	}
	if err := repoFactory.NewUserRepository().Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create google user")
	}

	return user, nil
}
