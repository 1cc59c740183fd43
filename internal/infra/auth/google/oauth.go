// Package google bridges Google sign-in into pgbee through the OAuth 2.0
// authorization-code flow.
package google

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/oauth2"
	googleendpoint "golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"pgbee/config"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

// OAuthService handles Google OAuth infrastructure operations
type OAuthService struct {
	oauthConfig *oauth2.Config
	// apiEndpoint overrides the userinfo API base URL; empty means Google's.
	apiEndpoint string
	logger      *slog.Logger
}

// NewOAuthService creates a new Google OAuth service
func NewOAuthService(cfg *config.Config, logger *slog.Logger) (service.OAuthService, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, errors.New("google oauth client is not configured")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURI,
		Scopes:       strings.Fields(cfg.GoogleOAuth.Scopes),
		Endpoint:     googleendpoint.Endpoint,
	}

	return newOAuthService(oauthCfg, "", logger), nil
}

func newOAuthService(oauthCfg *oauth2.Config, apiEndpoint string, logger *slog.Logger) *OAuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &OAuthService{
		oauthConfig: oauthCfg,
		apiEndpoint: apiEndpoint,
		logger:      logger,
	}
}

// AuthCodeURL constructs the consent URL with state parameter for CSRF protection
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// FetchProfile exchanges code for a token and reads the Google profile with it.
func (s *OAuthService) FetchProfile(ctx context.Context, code string) (*service.OAuthProfile, error) {
	if code == "" {
		return nil, domainerrors.ErrOAuthFailed.WithDetails("missing authorization code")
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "google code exchange failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOAuthFailed, err.Error())
	}

	opts := []option.ClientOption{
		option.WithHTTPClient(s.oauthConfig.Client(ctx, token)),
	}
	if s.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.apiEndpoint))
	}

	api, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create google oauth2 client")
	}

	info, err := api.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		s.logger.WarnContext(ctx, "google userinfo request failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOAuthFailed, err.Error())
	}

	profile := &service.OAuthProfile{
		ProviderUserID: info.Id,
		Email:          strings.TrimSpace(info.Email),
		Name:           info.Name,
		AvatarURL:      info.Picture,
	}
	if info.VerifiedEmail != nil {
		profile.EmailVerified = *info.VerifiedEmail
	}

	return profile, nil
}
