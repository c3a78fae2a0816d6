package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a configuration that passes Validate.
func validConfig() *Config {
	return &Config{
		App: AppConfig{Name: "quoteboard", Version: "1.0.0", Environment: "test"},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  DefaultMaxRequestSize,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Client: ClientConfig{
			Timeout: 5 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{MaxFailures: 5, Timeout: 30 * time.Second, HalfOpenLimit: 3},
			Transport:      TransportConfig{MaxIdleConns: 100, MaxIdleConnsPerHost: 10, IdleConnTimeout: 90 * time.Second},
		},
		Auth: AuthConfig{
			CookieName: "admin_token",
			SessionTTL: 12 * time.Hour,
			JWKS:       JWKSConfig{TTL: time.Hour},
		},
		Storage: StorageConfig{
			Backend: StorageBackendSQL,
			SQL:     SQLConfig{Driver: "sqlite", DSN: "file::memory:", LogLevel: "warn"},
		},
		Quotes: QuotesConfig{MaxLength: DefaultQuoteMaxLength},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},

		// app and server
		{name: "unknown environment", mutate: func(c *Config) { c.App.Environment = "staging" }, wantErr: "app.environment must be one of: local dev qa prod test"},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port must be at most 65535"},
		{name: "read timeout too short", mutate: func(c *Config) { c.Server.ReadTimeout = time.Millisecond }, wantErr: "server.read_timeout must be at least 1s"},
		{name: "request timeout disabled", mutate: func(c *Config) { c.Server.RequestTimeout = 0 }},
		{name: "body limit required", mutate: func(c *Config) { c.Server.MaxRequestSize = 0 }, wantErr: "server.max_request_size is required"},

		// logging
		{name: "trace level", mutate: func(c *Config) { c.Log.Level = "trace" }},
		{name: "level is case sensitive", mutate: func(c *Config) { c.Log.Level = "INFO" }, wantErr: "log.level"},
		{name: "pretty format", mutate: func(c *Config) { c.Log.Format = "pretty" }},
		{name: "unknown format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "file sink needs a path", mutate: func(c *Config) { c.Log.File.Enabled = true }, wantErr: "log.file.path is required"},
		{
			name: "file sink",
			mutate: func(c *Config) {
				c.Log.File = LogFileConfig{Enabled: true, Path: "/var/log/quoteboard.log", MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 7}
			},
		},

		// telemetry
		{name: "telemetry off needs no endpoint", mutate: func(c *Config) { c.Telemetry.SamplingRate = 0.5 }},
		{
			name:    "telemetry on needs an endpoint",
			mutate:  func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "quoteboard"} },
			wantErr: "telemetry.endpoint is required",
		},
		{
			name:    "telemetry endpoint scheme",
			mutate:  func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "quoteboard", Endpoint: "grpc://otel:4317"} },
			wantErr: "http or https scheme",
		},
		{
			name:   "telemetry on",
			mutate: func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "quoteboard", Endpoint: "http://otel:4317", SamplingRate: 1} },
		},
		{name: "sampling rate above one", mutate: func(c *Config) { c.Telemetry.SamplingRate = 1.5 }, wantErr: "telemetry.sampling_rate must be at most 1"},

		// auth
		{
			name: "jwks with issuer and audience",
			mutate: func(c *Config) {
				c.Auth.JWKS = JWKSConfig{URL: "https://auth.example.com/.well-known/jwks.json", TTL: time.Hour, Issuer: "https://auth.example.com", Audience: "quoteboard"}
			},
		},
		{name: "jwks url must be a url", mutate: func(c *Config) { c.Auth.JWKS.URL = "not a url" }, wantErr: "auth.jwks.url must be a valid URL"},
		{name: "cookie name required", mutate: func(c *Config) { c.Auth.CookieName = "" }, wantErr: "auth.cookie_name is required"},
		{name: "session ttl minimum", mutate: func(c *Config) { c.Auth.SessionTTL = time.Second }, wantErr: "auth.session_ttl must be at least 1m"},
		{name: "admin emails must be emails", mutate: func(c *Config) { c.Auth.Admin.Emails = []string{"boss"} }, wantErr: "auth.admin.emails[0] must be a valid email address"},
		{name: "credentials need a separator", mutate: func(c *Config) { c.Auth.Admin.Credentials = []string{"boss@x.com"} }, wantErr: `auth.admin.credentials[0] must contain ":"`},
		{name: "credential password without separator", mutate: func(c *Config) { c.Auth.Admin.Credentials = []string{"boss@x.com:pa:ss"} }, wantErr: `auth.admin.credentials[0] password must not contain ":"`},
		{name: "admin password without separator", mutate: func(c *Config) { c.Auth.Admin.Passwords = []string{"pa:ss"} }, wantErr: `auth.admin.passwords[0] must not contain ":"`},
		{
			name: "one shared password",
			mutate: func(c *Config) {
				c.Auth.Admin.Emails = []string{"a@x.com", "b@x.com"}
				c.Auth.Admin.Passwords = []string{"pw"}
			},
		},
		{
			name: "paired passwords",
			mutate: func(c *Config) {
				c.Auth.Admin.Emails = []string{"a@x.com", "b@x.com"}
				c.Auth.Admin.Passwords = []string{"pw1", "pw2"}
			},
		},
		{
			name: "mismatched password count",
			mutate: func(c *Config) {
				c.Auth.Admin.Emails = []string{"a@x.com", "b@x.com", "c@x.com"}
				c.Auth.Admin.Passwords = []string{"pw1", "pw2"}
			},
			wantErr: "one password per email",
		},
		{name: "several passwords without emails", mutate: func(c *Config) { c.Auth.Admin.Passwords = []string{"pw1", "pw2"} }, wantErr: "single password"},
		{name: "single password without emails", mutate: func(c *Config) { c.Auth.Admin.Passwords = []string{"pw"} }},
		{
			name: "credentials override the password pairing",
			mutate: func(c *Config) {
				c.Auth.Admin.Passwords = []string{"pw1", "pw2"}
				c.Auth.Admin.Credentials = []string{"boss@x.com:pw"}
			},
		},

		// storage and quotes
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }, wantErr: "storage.backend must be one of: sql mongo"},
		{name: "unknown sql driver", mutate: func(c *Config) { c.Storage.SQL.Driver = "mysql" }, wantErr: "storage.sql.driver"},
		{name: "sql requires dsn", mutate: func(c *Config) { c.Storage.SQL.DSN = " " }, wantErr: "storage.sql.dsn is required"},
		{name: "mongo requires uri", mutate: func(c *Config) { c.Storage.Backend = StorageBackendMongo }, wantErr: "storage.mongo.uri is required"},
		{
			name:    "mongo requires database",
			mutate:  func(c *Config) { c.Storage = StorageConfig{Backend: StorageBackendMongo, SQL: c.Storage.SQL, Mongo: MongoConfig{URI: "mongodb://localhost"}} },
			wantErr: "storage.mongo.database is required",
		},
		{
			name: "mongo",
			mutate: func(c *Config) {
				c.Storage.Backend = StorageBackendMongo
				c.Storage.Mongo = MongoConfig{URI: "mongodb://localhost:27017", Database: "quoteboard"}
			},
		},
		{name: "quote length above the domain cap", mutate: func(c *Config) { c.Quotes.MaxLength = 5000 }, wantErr: "quotes.max_length must be at most 2000"},

		// identity provider client
		{name: "client timeout minimum", mutate: func(c *Config) { c.Client.Timeout = 50 * time.Millisecond }, wantErr: "client.timeout must be at least 100ms"},
		{name: "retry attempts above ten", mutate: func(c *Config) { c.Client.Retry.MaxAttempts = 11 }, wantErr: "client.retry.max_attempts must be at most 10"},
		{name: "retry multiplier below 1.1", mutate: func(c *Config) { c.Client.Retry.Multiplier = 1 }, wantErr: "client.retry.multiplier must be at least 1.1"},
		{name: "jitter above one", mutate: func(c *Config) { c.Client.Retry.JitterFactor = 2 }, wantErr: "client.retry.jitter_factor"},
		{name: "breaker failures required", mutate: func(c *Config) { c.Client.CircuitBreaker.MaxFailures = 0 }, wantErr: "client.circuit_breaker.max_failures is required"},
		{name: "idle pool required", mutate: func(c *Config) { c.Client.Transport.MaxIdleConnsPerHost = 0 }, wantErr: "client.transport.max_idle_conns_per_host is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.Server.Port = 0
	cfg.Storage.SQL.DSN = ""

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)

	for _, want := range []string{"app.name is required", "server.port is required", "storage.sql.dsn is required"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestConfig_Validate_EmptyConfig(t *testing.T) {
	err := (&Config{}).Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "app")
	assert.Contains(t, err.Error(), "storage")
}
