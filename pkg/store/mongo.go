package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strataviz/harris/pkg/errors"
	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/strata"
)

// MongoConfig configures the MongoDB store backend.
type MongoConfig struct {
	URI        string `json:"uri" toml:"uri"`
	Database   string `json:"database" toml:"database"`
	Collection string `json:"collection" toml:"collection"`
}

// Defaults for the MongoDB backend.
const (
	DefaultDatabase   = "harris"
	DefaultCollection = "matrices"
)

// MongoStore persists matrices in a MongoDB collection, keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, idx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create name index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Save inserts or replaces the record for a name.
// The record ID is stable across updates to the same name.
func (s *MongoStore) Save(ctx context.Context, name string, m strata.Matrix, l *layout.Layout) (Record, error) {
	if err := errors.ValidateName(name); err != nil {
		return Record{}, err
	}
	if err := errors.ValidateMatrix(m); err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:        uuid.NewString(),
		Name:      name,
		Matrix:    m,
		Layout:    l,
		UpdatedAt: time.Now().UTC(),
	}

	// Keep the original ID if the name already exists.
	var existing Record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&existing)
	if err == nil {
		rec.ID = existing.ID
	} else if err != mongo.ErrNoDocuments {
		return Record{}, errors.Wrap(errors.ErrCodeStore, err, "look up matrix %q", name)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"name": name}, rec, opts); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeStore, err, "save matrix %q", name)
	}
	return rec, nil
}

// Get returns the record stored under a name.
func (s *MongoStore) Get(ctx context.Context, name string) (Record, error) {
	if err := errors.ValidateName(name); err != nil {
		return Record{}, err
	}
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return Record{}, errors.New(errors.ErrCodeMatrixNotFound, "matrix %q not found", name)
	}
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeStore, err, "get matrix %q", name)
	}
	return rec, nil
}

// List returns summaries of all stored matrices, sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list matrices")
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var rec Record
		if err := cur.Decode(&rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode record")
		}
		out = append(out, Summary{
			ID:        rec.ID,
			Name:      rec.Name,
			Units:     len(rec.Matrix.Units),
			UpdatedAt: rec.UpdatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list matrices")
	}
	return out, nil
}

// Delete removes the record stored under a name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete matrix %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeMatrixNotFound, "matrix %q not found", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
