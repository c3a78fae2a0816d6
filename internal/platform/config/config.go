// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultClientRetryMaxAttempts is the default number of retry attempts.
	DefaultClientRetryMaxAttempts = 3

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultTransportIdleConnTimeout is the default idle connection timeout.
	DefaultTransportIdleConnTimeout = 90 * time.Second

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultSQLiteDSN is the embedded database used in local mode.
	DefaultSQLiteDSN = "local.db"

	// DefaultQuoteMaxLength caps submitted quote content in characters.
	DefaultQuoteMaxLength = 2000
)

// Storage backends.
const (
	StorageBackendSQL   = "sql"
	StorageBackendMongo = "mongo"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"`
	Storage   StorageConfig   `koanf:"storage"   validate:"required"`
	Quotes    QuotesConfig    `koanf:"quotes"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"min=0"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig contains credential resolution settings.
type AuthConfig struct {
	// Local enables static admin secrets for every credential and disables
	// external token verification.
	Local        bool          `koanf:"local"`
	CookieName   string        `koanf:"cookie_name"   validate:"required"`
	CookieSecure bool          `koanf:"cookie_secure"`
	SessionTTL   time.Duration `koanf:"session_ttl"   validate:"required,min=1m"`
	Admin        AdminConfig   `koanf:"admin"`
	JWKS         JWKSConfig    `koanf:"jwks"`
}

// AdminConfig is the static admin credential material.
type AdminConfig struct {
	Emails      []string `koanf:"emails"      validate:"dive,email"`
	Passwords   []string `koanf:"passwords"   validate:"dive,excludes=:"`
	Credentials []string `koanf:"credentials" validate:"dive,contains=:"`
	Name        string   `koanf:"name"`
}

// JWKSConfig configures verification of identity-provider tokens. An empty
// URL disables token verification.
type JWKSConfig struct {
	URL      string        `koanf:"url"      validate:"omitempty,url"`
	TTL      time.Duration `koanf:"ttl"      validate:"required,min=1s"`
	Issuer   string        `koanf:"issuer"`
	Audience string        `koanf:"audience"`
}

// StorageConfig selects and configures the quote and user stores.
type StorageConfig struct {
	Backend string      `koanf:"backend" validate:"required,oneof=sql mongo"`
	SQL     SQLConfig   `koanf:"sql"`
	Mongo   MongoConfig `koanf:"mongo"`
}

// SQLConfig configures the gorm-backed relational stores.
type SQLConfig struct {
	Driver       string `koanf:"driver"         validate:"required,oneof=sqlite postgres"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"min=0"`
	LogLevel     string `koanf:"log_level"      validate:"oneof=silent error warn info"`
}

// MongoConfig configures the document stores.
type MongoConfig struct {
	URI      string        `koanf:"uri"`
	Database string        `koanf:"database"`
	Quotes   string        `koanf:"quotes"`
	Users    string        `koanf:"users"`
	Timeout  time.Duration `koanf:"timeout"  validate:"min=0"`
}

// QuotesConfig contains submission settings.
type QuotesConfig struct {
	AllowAnonymous bool `koanf:"allow_anonymous"`
	MaxLength      int  `koanf:"max_length" validate:"required,min=1,max=2000"`
}

// ClientConfig contains HTTP client settings for the identity provider.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"         validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"      validate:"required,min=1s"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quoteboard",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "30s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quoteboard",
		"telemetry.sampling_rate": 1.0,

		"auth.local":         false,
		"auth.cookie_name":   "admin_token",
		"auth.cookie_secure": false,
		"auth.session_ttl":   "12h",
		"auth.admin.name":    "Admin",
		"auth.jwks.url":      "",
		"auth.jwks.ttl":      "1h",

		"storage.backend":            StorageBackendSQL,
		"storage.sql.driver":         "sqlite",
		"storage.sql.dsn":            DefaultSQLiteDSN,
		"storage.sql.max_open_conns": 0,
		"storage.sql.log_level":      "warn",
		"storage.mongo.database":     "quoteboard",
		"storage.mongo.quotes":       "quotes",
		"storage.mongo.users":        "users",
		"storage.mongo.timeout":      "10s",

		"quotes.allow_anonymous": false,
		"quotes.max_length":      DefaultQuoteMaxLength,

		"client.timeout":                           "10s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",
	}
}

// envPrefix marks the environment variables Load reads.
const envPrefix = "APP_"

// Load builds the configuration from, lowest precedence first:
//  1. compiled-in defaults
//  2. configs/base.yaml
//  3. configs/{profile}.yaml
//  4. legacy variables such as LOCAL_MODE, MONGODB_URI and ADMIN_EMAILS
//  5. APP_ variables, e.g. APP_SERVER_READ_TIMEOUT for server.read_timeout
//
// Missing files are skipped. A .env file in the working directory is read
// into the process environment first without overriding what is set.
func Load(profile string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")

	steps := []struct {
		name string
		load func() error
	}{
		{"defaults", func() error { return k.Load(confmap.Provider(defaults(), "."), nil) }},
		{"configs/base.yaml", func() error { return loadFileIfExists(k, "configs/base.yaml") }},
		{"profile " + profile, func() error {
			if profile == "" {
				return nil
			}

			return loadFileIfExists(k, fmt.Sprintf("configs/%s.yaml", profile))
		}},
		{"legacy env vars", func() error { return loadLegacyEnv(k) }},
		{envPrefix + " env vars", func() error {
			return k.Load(env.Provider(envPrefix, ".", envKeyMapper(k.Keys())), nil)
		}},
	}

	for _, step := range steps {
		if err := step.load(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", step.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKeyMapper turns APP_SERVER_READ_TIMEOUT into server.read_timeout.
// Underscores are ambiguous between nesting and multi-word keys, so names
// are first matched against the keys already loaded; unknown names fall
// back to treating every underscore as nesting.
func envKeyMapper(known []string) func(string) string {
	byEnvName := make(map[string]string, len(known))
	for _, key := range known {
		byEnvName[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(name string) string {
		name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
		if key, ok := byEnvName[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}

// loadDotEnv loads path into the process environment. A missing file is
// not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// loadFileIfExists merges the YAML file at path into k. A missing file is
// not an error.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
