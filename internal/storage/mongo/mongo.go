// Package mongo implements a storage backend over a MongoDB collection,
// one document per key.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// Backend stores each key as a document in the kv_entries collection.
type Backend struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Open connects to MongoDB and verifies the connection with a ping.
func Open(uri, database string) (*Backend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &Backend{
		client:     client,
		collection: client.Database(database).Collection("kv_entries"),
	}, nil
}

// Close disconnects from MongoDB.
func (b *Backend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return b.client.Disconnect(ctx)
}

func (b *Backend) GetItem(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var doc kvDocument
	err := b.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

func (b *Backend) SetItem(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := b.collection.ReplaceOne(ctx, bson.M{"_id": key},
		kvDocument{Key: key, Value: value}, options.Replace().SetUpsert(true))
	return err
}

func (b *Backend) RemoveItem(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := b.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (b *Backend) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := b.collection.DeleteMany(ctx, bson.D{})
	return err
}

func (b *Backend) Len() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	n, err := b.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
