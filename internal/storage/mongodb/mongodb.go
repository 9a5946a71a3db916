// Package mongodb implements the event and join repositories on MongoDB.
//
// Collections are schemaless on the database side; the shapes in this
// package are the single source of truth for what gets written. Document
// identifiers are MongoDB ObjectIDs exposed to the rest of the
// application as hex strings.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jaberDevHub/help-hive-server-side/internal/config"
)

const (
	eventsCollection = "events"
	joinsCollection  = "joined_events"

	defaultQueryTimeout = 10 * time.Second
)

// Connect establishes a client connection and verifies it with a ping.
// The caller owns the returned client and must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// Store bundles the repositories backed by a single database handle.
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	events       *EventsRepository
	joins        *JoinsRepository
	queryTimeout time.Duration
}

// NewStore wraps an established client connection.
func NewStore(client *mongo.Client, cfg config.MongoConfig) *Store {
	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	db := client.Database(cfg.Database)
	return &Store{
		client:       client,
		db:           db,
		events:       &EventsRepository{collection: db.Collection(eventsCollection), timeout: timeout},
		joins:        &JoinsRepository{collection: db.Collection(joinsCollection), timeout: timeout},
		queryTimeout: timeout,
	}
}

// Events returns the event repository.
func (s *Store) Events() *EventsRepository {
	return s.events
}

// Joins returns the join repository.
func (s *Store) Joins() *JoinsRepository {
	return s.joins
}

// Ping verifies the database is reachable. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// compound index on joins is what enforces one join per participant per
// event, including under concurrent requests; it must exist before the
// server starts accepting traffic.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.joins.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "event_id", Value: 1},
			{Key: "participant_email", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_event_participant"),
	})
	if err != nil {
		return fmt.Errorf("failed to create join uniqueness index: %w", err)
	}

	_, err = s.events.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_date", Value: 1}},
			Options: options.Index().SetName("idx_event_date"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_creator_email"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create event indexes: %w", err)
	}

	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}
	return nil
}
