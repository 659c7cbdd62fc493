package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

// Collection names.
const (
	UsersCollection   = "users"
	DialogsCollection = "dialogs"
	PromptsCollection = "prompts"
)

// Config holds database configuration
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Database bundles the client and the application database handle.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger
}

// Connect opens a client using Server API v1, pings the primary and returns
// a database handle with majority write concern.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*Database, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		log.Error().
			Str("error_code", "7a3e5c1b-9d2f-4e8a-b6c4-0f1e2d3c4b5a").
			Err(err).
			Msg("unable to connect to database")
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		log.Error().
			Str("error_code", "c2d4e6f8-0a1b-4c3d-9e5f-7a8b9c0d1e2f").
			Err(err).
			Msg("database ping failed")
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Info().Str("database", cfg.Database).Msg("pinged deployment, successfully connected to MongoDB")

	db := client.Database(cfg.Database, options.Database().SetWriteConcern(writeconcern.Majority()))
	return &Database{client: client, db: db, log: log}, nil
}

// Collection returns a handle to the named collection.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping checks the deployment is reachable; used by the readiness endpoint.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes the repositories rely on.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	_, err := d.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("ux_users_username"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = d.Collection(DialogsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("ix_dialogs_user_created"),
	})
	if err != nil {
		return fmt.Errorf("create dialogs index: %w", err)
	}

	_, err = d.Collection(PromptsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("ux_prompts_key"),
	})
	if err != nil {
		return fmt.Errorf("create prompts index: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return err
	}
	d.log.Info().Msg("disconnected from MongoDB")
	return nil
}
