// Command service runs the quoteboard HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen/quoteboard/internal/adapters/clients"
	"github.com/jsamuelsen/quoteboard/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteboard/internal/adapters/tokens"
	"github.com/jsamuelsen/quoteboard/internal/app"
	"github.com/jsamuelsen/quoteboard/internal/app/auth"
	"github.com/jsamuelsen/quoteboard/internal/domain/contenthash"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
	"github.com/jsamuelsen/quoteboard/internal/platform/telemetry"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// Set with -ldflags "-X main.Version=... -X main.Commit=... -X main.BuildTime=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quoteboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)

	logger.Info("starting quoteboard",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Backend),
		slog.Bool("local_mode", cfg.Auth.Local),
	)

	// SIGINT or SIGTERM cancels ctx, which starts the drain below.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Error("flushing telemetry", slog.Any("error", err))
		}
	}()

	st, err := openStores(ctx, &cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	defer func() {
		if err := st.close(context.Background()); err != nil {
			logger.Error("closing storage", slog.Any("error", err))
		}
	}()

	health := ports.NewHealthRegistry()
	if err := health.Register(st.health); err != nil {
		return fmt.Errorf("registering storage health check: %w", err)
	}

	authenticator, err := newAuthenticator(cfg, logger, st.users, health)
	if err != nil {
		return err
	}

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Store:     st.quotes,
		Hash:      contenthash.Hash,
		MaxLength: cfg.Quotes.MaxLength,
		Logger:    logger,
	})
	users := app.NewUserService(app.UserServiceConfig{Store: st.users, Logger: logger})

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		Authenticator: authenticator,
		HealthHandler: handlers.NewHealthHandler(health, handlers.NewBuildInfo(Version, Commit, BuildTime)),
		QuoteHandler:  handlers.NewQuoteHandler(quotes, cfg.Quotes.AllowAnonymous),
		UserHandler:   handlers.NewUserHandler(users),
		SessionHandler: handlers.NewSessionHandler(authenticator, handlers.SessionConfig{
			Secure: cfg.Auth.CookieSecure,
			TTL:    cfg.Auth.SessionTTL,
		}),
		AdminHandler: handlers.NewAdminHandler(quotes, users, app.NewStatsService(st.quotes, st.users)),
		Timeout:      cfg.Server.RequestTimeout,
	})

	serveErr, err := server.Start()
	if err != nil {
		return err
	}

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logger.Info("shutdown requested", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(drainCtx); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
}

// newAuthenticator assembles credential resolution: static admins from
// config, stored accounts, and identity-provider tokens when a key set URL
// is configured outside local mode.
func newAuthenticator(
	cfg *config.Config,
	logger *slog.Logger,
	users ports.UserStore,
	health ports.HealthRegistry,
) (*auth.Authenticator, error) {
	verifier, err := newTokenVerifier(cfg, logger, health)
	if err != nil {
		return nil, err
	}

	admins, err := auth.NewStaticAdmins(auth.StaticAdminConfig{
		Credentials: cfg.Auth.Admin.Credentials,
		Emails:      cfg.Auth.Admin.Emails,
		Passwords:   cfg.Auth.Admin.Passwords,
		Name:        cfg.Auth.Admin.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("loading admin credentials: %w", err)
	}

	if admins.Len() == 0 && verifier == nil {
		logger.Warn("no static admins and no token verifier configured; only stored admins can moderate")
	}

	resolver := auth.NewResolver(auth.ResolverConfig{
		LocalMode:   cfg.Auth.Local,
		AdminEmails: cfg.Auth.Admin.Emails,
	}, admins, users, verifier)

	return auth.NewAuthenticator(resolver, cfg.Auth.CookieName), nil
}

// newTokenVerifier builds the JWKS-backed verifier. It returns a nil
// verifier when no key set URL is configured or local mode is on.
func newTokenVerifier(cfg *config.Config, logger *slog.Logger, health ports.HealthRegistry) (ports.TokenVerifier, error) {
	if cfg.Auth.Local || cfg.Auth.JWKS.URL == "" {
		return nil, nil
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Auth.JWKS.URL,
		ServiceName: acl.KeySetServiceName,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating JWKS client: %w", err)
	}

	keySet := acl.NewKeySetClient(httpClient)

	// An unreachable provider degrades readiness without failing it: static
	// admins and stored accounts still authenticate.
	if err := health.Register(keySet, ports.NonCritical()); err != nil {
		return nil, fmt.Errorf("registering JWKS health check: %w", err)
	}

	return tokens.NewVerifier(keySet, tokens.Config{
		Issuer:   cfg.Auth.JWKS.Issuer,
		Audience: cfg.Auth.JWKS.Audience,
		CacheTTL: cfg.Auth.JWKS.TTL,
	}), nil
}
