package cache

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults for the MongoDB store.
const (
	DefaultMongoDatabase   = "pscdeps"
	DefaultMongoCollection = "catalog"
)

// mongoEntry is the stored document shape. The key is the document ID so
// lookups and replacements hit the primary index.
type mongoEntry struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

// MongoStore keeps one document per key in a collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and uses database.collection, falling back
// to the defaults for empty names.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Location implements Describer.
func (c *MongoStore) Location() string {
	return fmt.Sprintf("mongodb %s.%s", c.coll.Database().Name(), c.coll.Name())
}

// Get finds the document for key.
func (c *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrInvalidKey
	}
	var entry mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Data, true, nil
}

// Set replaces the document for key, inserting it when absent.
func (c *MongoStore) Set(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	_, err := c.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		mongoEntry{Key: key, Data: data},
		options.Replace().SetUpsert(true),
	)
	return err
}

// Clear drops the collection. Dropping a missing collection succeeds.
func (c *MongoStore) Clear(ctx context.Context) error {
	return c.coll.Drop(ctx)
}

// Close disconnects the client.
func (c *MongoStore) Close() error {
	return c.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
