package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// New connects to MongoDB and pings the primary, retrying up to
// cfg.RetryAttempts times. When tracker is non-nil it follows the connection
// state for the lifetime of the client.
func New(ctx context.Context, cfg Config, tracker *Tracker) (*mongo.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrMissingURL
	}

	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites).
		SetRetryReads(cfg.RetryReads)
	if tracker != nil {
		opts.SetServerMonitor(tracker.ServerMonitor())
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		tracker.Set(Connecting)

		client, err := connect(ctx, cfg, opts)
		if err == nil {
			tracker.Set(Connected)
			return client, nil
		}
		lastErr = err
		tracker.Set(Disconnected)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnectToMongo, ctx.Err(), lastErr)
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToConnectToMongo,
		fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr))
}

func connect(ctx context.Context, cfg Config, opts *options.ClientOptions) (*mongo.Client, error) {
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}
	return client, nil
}

// NewWithDatabase connects and returns the configured database handle.
func NewWithDatabase(ctx context.Context, cfg Config, tracker *Tracker) (*mongo.Database, error) {
	client, err := New(ctx, cfg, tracker)
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.Database), nil
}

// Close disconnects the client and marks the tracker disconnected.
func Close(ctx context.Context, client *mongo.Client, tracker *Tracker) error {
	if client == nil {
		tracker.Set(Disconnected)
		return nil
	}
	tracker.Set(Disconnecting)
	err := client.Disconnect(ctx)
	tracker.Set(Disconnected)
	return err
}

// Healthcheck returns a ping check for health endpoints.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
