// Package mongostore implements the quote and user stores on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// Config configures the MongoDB connection.
type Config struct {
	URI      string
	Database string

	// Quotes and Users are collection names.
	Quotes string
	Users  string

	// Timeout bounds server selection and each operation.
	Timeout time.Duration
}

// Client is a connected MongoDB client shared by both stores.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
}

var _ ports.HealthChecker = (*Client)(nil)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}

	if cfg.Quotes == "" {
		cfg.Quotes = "quotes"
	}

	if cfg.Users == "" {
		cfg.Users = "users"
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		opts.SetServerSelectionTimeout(cfg.Timeout).SetTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
	}, nil
}

// Name returns the health check name.
func (c *Client) Name() string {
	return "mongostore"
}

// Check pings the primary.
func (c *Client) Check(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Drop removes the configured database. Used by tests to reset state.
func (c *Client) Drop(ctx context.Context) error {
	return c.db.Drop(ctx)
}

// translateError converts a driver error into the domain taxonomy. Callers
// that expect a duplicate key handle it first; any other constraint
// violation is a storage failure.
func translateError(op, entity, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.NewNotFoundError(entity, id)
	default:
		return domain.NewStorageError(op, err)
	}
}
