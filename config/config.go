package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"

	"pgbee/internal/domain/constants"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "2MB"
	defaultBcryptCost         = 10
	defaultMaxUploadSize      = 5 << 20
	defaultSessionPurge       = time.Hour

	// MemoryBucketURL keeps uploads in process memory. It is the default
	// bucket and is refused in production.
	MemoryBucketURL = "mem://"
)

var defaultAllowOrigins = []string{
	"https://app.pgbee.in",
	"http://localhost:3000",
	"http://localhost:3001",
}

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Database struct {
		// AutoMigrate runs GORM AutoMigrate over every model at startup.
		AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
	} `json:"database" yaml:"database"`

	SecretKey SecretKeyConfig `json:"secretKey" yaml:"secretKey"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Redis backs the OAuth state store and the auth rate limiter. Optional.
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Storage *StorageConfig `json:"storage" yaml:"storage"`

	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`
}

// SecretKeyConfig holds the signing secrets. Access and refresh must differ.
type SecretKeyConfig struct {
	Access  string `json:"access" yaml:"access"`
	Refresh string `json:"refresh" yaml:"refresh"`
	Session string `json:"session" yaml:"session"`
}

type GoogleOAuthConfig struct {
	ClientID     string `json:"clientId" yaml:"clientId"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
	RedirectURI  string `json:"redirectUri" yaml:"redirectUri"`
	Scopes       string `json:"scopes" yaml:"scopes"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
	// CookieSecure is turned off only for plain-HTTP local development.
	CookieSecure bool `json:"cookieSecure" yaml:"cookieSecure"`
	// SessionPurgeInterval is how often expired refresh sessions are deleted.
	SessionPurgeInterval time.Duration `json:"sessionPurgeInterval" yaml:"sessionPurgeInterval"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// RateLimitConfig configures the token bucket guarding /auth.
type RateLimitConfig struct {
	Enabled        bool          `json:"enabled" yaml:"enabled"`
	Capacity       int           `json:"capacity" yaml:"capacity"`
	RefillInterval time.Duration `json:"refillInterval" yaml:"refillInterval"`
	TTL            time.Duration `json:"ttl" yaml:"ttl"`
	Prefix         string        `json:"prefix" yaml:"prefix"`
}

// StorageConfig points at the bucket receiving uploads.
type StorageConfig struct {
	// BucketURL is a gocloud.dev URL: s3://pgbee?region=ap-south-1, gs://..., file:///tmp/uploads, mem://
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	// PublicBaseURL prefixes object keys to build the public location.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	MaxUploadSize int64  `json:"maxUploadSize" yaml:"maxUploadSize"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider      string `json:"provider" yaml:"provider"`
	ProjectID     string `json:"projectId" yaml:"projectId"`
	TopicID       string `json:"topicId" yaml:"topicId"`
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
	// PushAudience is the audience expected on OIDC tokens of push requests.
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// POSTGRES_SSLMODE -> postgres.sslMode, aligned with the YAML keys
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads config/config.yaml, overlays the environment (a .env file is read
// first when present) and validates the result. A missing secret aborts boot.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyLegacyEnv(cfg)
	cfg.applyDefaults()

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewWorker loads the same sources as New but skips the API-only checks,
// since the notifier holds no signing secrets and opens no database.
func NewWorker() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Validate reports the first missing or inconsistent required setting.
func (c *Config) Validate() error {
	switch {
	case c.SecretKey.Access == "":
		return errors.New("secretKey.access (JWT_SECRET) is required")
	case c.SecretKey.Refresh == "":
		return errors.New("secretKey.refresh (REFRESH_TOKEN) is required")
	case c.SecretKey.Access == c.SecretKey.Refresh:
		return errors.New("secretKey.access and secretKey.refresh must differ")
	case c.SecretKey.Session == "":
		return errors.New("secretKey.session (SESSION_SECRET) is required")
	case c.GoogleOAuth == nil || c.GoogleOAuth.ClientID == "" || c.GoogleOAuth.ClientSecret == "":
		return errors.New("googleOAuth.clientId and googleOAuth.clientSecret are required")
	case c.Postgres == nil:
		return errors.New("postgres connection is required")
	case c.Env.Env == constants.EnvProduction && (c.Storage == nil || strings.HasPrefix(c.Storage.BucketURL, MemoryBucketURL)):
		return errors.New("storage.bucketUrl must name a persistent bucket in production")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if len(c.HTTP.AllowOrigins) == 0 {
		c.HTTP.AllowOrigins = defaultAllowOrigins
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{CookieSecure: true}
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}
	if c.Auth.SessionPurgeInterval <= 0 {
		c.Auth.SessionPurgeInterval = defaultSessionPurge
	}
	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}
	if c.Storage.BucketURL == "" {
		c.Storage.BucketURL = MemoryBucketURL
	}
	if c.Storage.MaxUploadSize <= 0 {
		c.Storage.MaxUploadSize = defaultMaxUploadSize
	}
	if c.GoogleOAuth != nil && c.GoogleOAuth.Scopes == "" {
		c.GoogleOAuth.Scopes = "openid email profile"
	}
}

// applyLegacyEnv honours the variable names the previous deployment used.
// Structured keys (SECRETKEY_ACCESS, ...) take precedence when both are set.
func applyLegacyEnv(cfg *Config) {
	fill := func(dst *string, name string) {
		if *dst == "" {
			*dst = os.Getenv(name)
		}
	}

	fill(&cfg.SecretKey.Access, "JWT_SECRET")
	fill(&cfg.SecretKey.Refresh, "REFRESH_TOKEN")
	fill(&cfg.SecretKey.Session, "SESSION_SECRET")

	if os.Getenv("GOOGLE_CLIENT_ID") != "" && cfg.GoogleOAuth == nil {
		cfg.GoogleOAuth = &GoogleOAuthConfig{}
	}
	if cfg.GoogleOAuth != nil {
		fill(&cfg.GoogleOAuth.ClientID, "GOOGLE_CLIENT_ID")
		fill(&cfg.GoogleOAuth.ClientSecret, "GOOGLE_CLIENT_SECRET")
		fill(&cfg.GoogleOAuth.RedirectURI, "GOOGLE_CALLBACK_URL")
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}
// until the first index without a host or port.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
