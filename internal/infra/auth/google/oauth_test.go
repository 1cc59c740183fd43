package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"pgbee/config"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
)

func newFakeGoogle(t *testing.T, userinfo map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userinfo)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newTestService(srv *httptest.Server) *OAuthService {
	return newOAuthService(&oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, srv.URL+"/", nil)
}

func TestOAuthService_AuthCodeURL(t *testing.T) {
	svc, err := NewOAuthService(&config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:     "test_client_id",
			ClientSecret: "test_secret",
			RedirectURI:  "http://localhost:8080/callback",
			Scopes:       "openid email profile",
		},
	}, nil)
	require.NoError(t, err)

	raw := svc.AuthCodeURL("state-xyz")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", parsed.Host)
	q := parsed.Query()
	assert.Equal(t, "test_client_id", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8080/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "state-xyz", q.Get("state"))
}

func TestNewOAuthService_RequiresClient(t *testing.T) {
	_, err := NewOAuthService(&config.Config{}, nil)
	assert.Error(t, err)
}

func TestOAuthService_FetchProfile(t *testing.T) {
	srv := newFakeGoogle(t, map[string]any{
		"id":             "g-42",
		"email":          "jane@example.com",
		"name":           "Jane",
		"picture":        "https://img/jane.png",
		"verified_email": true,
	})
	svc := newTestService(srv)

	profile, err := svc.FetchProfile(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "g-42", profile.ProviderUserID)
	assert.Equal(t, "jane@example.com", profile.Email)
	assert.Equal(t, "Jane", profile.Name)
	assert.True(t, profile.EmailVerified)
	assert.Equal(t, "https://img/jane.png", profile.AvatarURL)
}

func TestOAuthService_FetchProfile_NoEmail(t *testing.T) {
	srv := newFakeGoogle(t, map[string]any{"id": "g-7", "name": "Anon"})
	svc := newTestService(srv)

	profile, err := svc.FetchProfile(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Empty(t, profile.Email)
}

func TestOAuthService_FetchProfile_ExchangeFails(t *testing.T) {
	srv := newFakeGoogle(t, nil)
	svc := newTestService(srv)

	_, err := svc.FetchProfile(context.Background(), "bad-code")
	assert.True(t, errors.Is(err, domainerrors.ErrOAuthFailed))

	_, err = svc.FetchProfile(context.Background(), "")
	assert.True(t, errors.Is(err, domainerrors.ErrOAuthFailed))
}
