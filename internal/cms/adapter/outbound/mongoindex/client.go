package mongoindex

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// MediaCollection is shared with existing uploadedimages data.
	MediaCollection = "uploadedimages"
	VideoCollection = "videos"
)

// Connect opens a client, pings the primary and makes sure the unique index
// on (category, filename) exists.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(database)
	if err := EnsureIndexes(connectCtx, db.Collection(MediaCollection)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

// EnsureIndexes creates the unique record identity index.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}, {Key: "filename", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("category_filename_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create media index: %w", err)
	}
	return nil
}
