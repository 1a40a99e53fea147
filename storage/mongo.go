package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName = "preferences"
	snapshotID     = "snapshot"
)

// mongoSnapshot adds the fixed document id to the persisted fields
type mongoSnapshot struct {
	ID       string `bson:"_id"`
	Snapshot `bson:",inline"`
}

type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	log        *slog.Logger
}

func NewMongoStorage(uri, database string, log *slog.Logger) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collectionName),
		log:        log,
	}, nil
}

func (m *MongoStorage) Load() (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc mongoSnapshot
	err := m.collection.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("finding snapshot: %w", err)
	}
	return &doc.Snapshot, nil
}

func (m *MongoStorage) Save(snapshot *Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := mongoSnapshot{ID: snapshotID, Snapshot: *snapshot}
	opts := options.Replace().SetUpsert(true)
	res, err := m.collection.ReplaceOne(ctx, bson.M{"_id": snapshotID}, doc, opts)
	if err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	m.log.With(
		slog.Int64("matched", res.MatchedCount),
		slog.Bool("upserted", res.UpsertedID != nil),
	).Debug("snapshot replaced")
	return nil
}

func (m *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
