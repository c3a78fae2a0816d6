package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quoteboard/internal/adapters/storage/mongostore"
	"github.com/jsamuelsen/quoteboard/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/quoteboard/internal/domain/contenthash"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// indexedStore is implemented by every store backend.
type indexedStore interface {
	EnsureIndexes(ctx context.Context) error
}

// stores bundles the configured backend.
type stores struct {
	quotes ports.QuoteStore
	users  ports.UserStore
	health ports.HealthChecker
	close  func(ctx context.Context) error
}

// openStores connects the backend selected by cfg.Backend and prepares its
// schema.
func openStores(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (*stores, error) {
	var (
		s       *stores
		indexed []indexedStore
	)

	switch cfg.Backend {
	case config.StorageBackendSQL:
		db, err := sqlstore.Open(sqlstore.Config{
			Driver:       cfg.SQL.Driver,
			DSN:          cfg.SQL.DSN,
			MaxOpenConns: cfg.SQL.MaxOpenConns,
			LogLevel:     cfg.SQL.LogLevel,
		})
		if err != nil {
			return nil, err
		}

		quotes := sqlstore.NewQuoteStore(db, contenthash.Hash)
		users := sqlstore.NewUserStore(db)
		indexed = []indexedStore{quotes, users}

		s = &stores{
			quotes: quotes,
			users:  users,
			health: db,
			close:  func(context.Context) error { return db.Close() },
		}
	case config.StorageBackendMongo:
		client, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Quotes:   cfg.Mongo.Quotes,
			Users:    cfg.Mongo.Users,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}

		quotes := mongostore.NewQuoteStore(client, contenthash.Hash)
		users := mongostore.NewUserStore(client)
		indexed = []indexedStore{quotes, users}

		s = &stores{
			quotes: quotes,
			users:  users,
			health: client,
			close:  client.Close,
		}
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}

	for _, st := range indexed {
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = s.close(ctx)
			return nil, fmt.Errorf("preparing %s storage: %w", cfg.Backend, err)
		}
	}

	logger.Info("storage ready", slog.String("backend", cfg.Backend))

	return s, nil
}
