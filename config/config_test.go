package config

import (
	"testing"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"googleOAuth": map[string]any{
			"clientId": "",
		},
		"rateLimit": map[string]any{
			"refillInterval": "3s",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "GOOGLEOAUTH_CLIENTID", want: "googleOAuth.clientId"},
		{envKey: "RATELIMIT_REFILLINTERVAL", want: "rateLimit.refillInterval"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func validConfig() *Config {
	return &Config{
		SecretKey:   SecretKeyConfig{Access: "a", Refresh: "r", Session: "s"},
		GoogleOAuth: &GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret"},
		Postgres:    &postgres.DBConn{},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing access", mutate: func(c *Config) { c.SecretKey.Access = "" }, wantErr: "secretKey.access"},
		{name: "missing refresh", mutate: func(c *Config) { c.SecretKey.Refresh = "" }, wantErr: "secretKey.refresh"},
		{name: "shared secret", mutate: func(c *Config) { c.SecretKey.Refresh = "a" }, wantErr: "must differ"},
		{name: "missing session", mutate: func(c *Config) { c.SecretKey.Session = "" }, wantErr: "secretKey.session"},
		{name: "missing oauth", mutate: func(c *Config) { c.GoogleOAuth = nil }, wantErr: "googleOAuth"},
		{name: "missing postgres", mutate: func(c *Config) { c.Postgres = nil }, wantErr: "postgres"},
		{
			name: "memory bucket in production",
			mutate: func(c *Config) {
				c.Env.Env = "production"
				c.Storage = &StorageConfig{BucketURL: MemoryBucketURL}
			},
			wantErr: "storage.bucketUrl",
		},
		{
			name: "persistent bucket in production",
			mutate: func(c *Config) {
				c.Env.Env = "production"
				c.Storage = &StorageConfig{BucketURL: "s3://pgbee-uploads?region=ap-south-1"}
			},
		},
		{
			name:   "memory bucket in develop",
			mutate: func(c *Config) { c.Storage = &StorageConfig{BucketURL: MemoryBucketURL} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyLegacyEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "legacy-access")
	t.Setenv("REFRESH_TOKEN", "legacy-refresh")
	t.Setenv("SESSION_SECRET", "legacy-session")
	t.Setenv("GOOGLE_CLIENT_ID", "legacy-client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "legacy-secret")
	t.Setenv("GOOGLE_CALLBACK_URL", "https://api.pgbee.in/auth/google/callback")

	cfg := &Config{SecretKey: SecretKeyConfig{Access: "structured"}}
	applyLegacyEnv(cfg)

	assert.Equal(t, "structured", cfg.SecretKey.Access)
	assert.Equal(t, "legacy-refresh", cfg.SecretKey.Refresh)
	assert.Equal(t, "legacy-session", cfg.SecretKey.Session)
	require.NotNil(t, cfg.GoogleOAuth)
	assert.Equal(t, "legacy-client", cfg.GoogleOAuth.ClientID)
	assert.Equal(t, "legacy-secret", cfg.GoogleOAuth.ClientSecret)
	assert.Equal(t, "https://api.pgbee.in/auth/google/callback", cfg.GoogleOAuth.RedirectURI)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{GoogleOAuth: &GoogleOAuthConfig{}}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultAllowOrigins, cfg.HTTP.AllowOrigins)
	require.NotNil(t, cfg.Auth)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Hour, cfg.Auth.SessionPurgeInterval)
	assert.Equal(t, "mem://", cfg.Storage.BucketURL)
	assert.EqualValues(t, defaultMaxUploadSize, cfg.Storage.MaxUploadSize)
	assert.Equal(t, "openid email profile", cfg.GoogleOAuth.Scopes)
}

func TestBuildReplicasFromEnv_StopsAtFirstGap(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-0")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5432")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")
	t.Setenv("POSTGRES_REPLICAS_1_HOST", "replica-1")
	t.Setenv("POSTGRES_REPLICAS_2_HOST", "replica-2")
	t.Setenv("POSTGRES_REPLICAS_2_PORT", "5432")

	replicas := buildReplicasFromEnv()

	require.Len(t, replicas, 1)
	assert.Equal(t, "replica-0", replicas[0].Host)
	assert.Equal(t, "reader", replicas[0].UserName)
}
