// Package mongo implements the user and event repositories on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds the connection settings for the Mongo store.
type Config struct {
	URI              string
	Database         string
	UsersCollection  string
	EventsCollection string
	Timeout          time.Duration
}

// Store owns the client and the two collections the repositories operate on.
type Store struct {
	Client *mongo.Client
	Users  *mongo.Collection
	Events *mongo.Collection
}

// Connect dials MongoDB, pings the primary and returns a Store.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return NewStore(client.Database(cfg.Database), cfg.UsersCollection, cfg.EventsCollection), nil
}

// NewStore wraps an existing database handle.
func NewStore(db *mongo.Database, usersCollection, eventsCollection string) *Store {
	return &Store{
		Client: db.Client(),
		Users:  db.Collection(usersCollection),
		Events: db.Collection(eventsCollection),
	}
}

// EnsureIndexes creates the unique email index on the users collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
