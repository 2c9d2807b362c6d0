// Package database wires the MongoDB client and bootstraps the collections
// the service relies on.
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collections groups the collections used by the repositories.
type Collections struct {
	Users  *mongo.Collection
	Mangas *mongo.Collection
}

// Open connects to MongoDB and verifies the connection.
func Open(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// NewCollections returns handles for the named database.
func NewCollections(client *mongo.Client, dbName string) Collections {
	db := client.Database(dbName)
	return Collections{
		Users:  db.Collection("users"),
		Mangas: db.Collection("mangas"),
	}
}

// EnsureIndexes creates the uniqueness indexes the write paths depend on.
// Duplicate usernames and duplicate catalog titles are rejected by these
// indexes with a duplicate-key error, which the repositories translate to a
// conflict. CreateOne is idempotent for an identical existing index.
func EnsureIndexes(ctx context.Context, c Collections) error {
	_, err := c.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("idx_username").SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = c.Mangas.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetName("idx_title").SetUnique(true),
	})
	return err
}
