package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the discovery core
const (
	CollectionTracks      = "tracks"
	CollectionAlbums      = "albums"
	CollectionPerformers  = "performers"
	CollectionUsers       = "users"
	CollectionPlayHistory = "play_history"
)

// Database represents the database connection
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDatabase creates a new database connection
func NewDatabase(ctx context.Context, mongoURL, dbName string) (*Database, error) {
	// Set client options
	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetMaxPoolSize(20).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	// Connect to MongoDB
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName)

	return &Database{
		Client: client,
		DB:     db,
	}, nil
}

// Close closes the database connection
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// Ping verifies the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, nil)
}

// CreateIndexes creates necessary indexes for optimal performance
func (d *Database) CreateIndexes(ctx context.Context) error {
	tracks := d.DB.Collection(CollectionTracks)

	trackIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "title", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "genres", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "tags", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "release_year", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "play_count", Value: -1}},
		},
	}
	if _, err := tracks.Indexes().CreateMany(ctx, trackIndexes); err != nil {
		return err
	}

	albums := d.DB.Collection(CollectionAlbums)
	if _, err := albums.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: 1}},
	}); err != nil {
		return err
	}

	performers := d.DB.Collection(CollectionPerformers)
	if _, err := performers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	}); err != nil {
		return err
	}

	// The compound unique index backs the atomic play upsert: a second
	// concurrent insert for the same pair fails and retries as an $inc.
	history := d.DB.Collection(CollectionPlayHistory)
	_, err := history.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "listener_id", Value: 1}, {Key: "track_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
