// Package mongo looks documents up in MongoDB by their "id" field.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unkn0wn-root/doccache/source"
)

// DefaultIDField is the field matched against the requested identifier.
const DefaultIDField = "id"

var ErrNilDatabase = errors.New("mongo source: nil database")

type Store struct {
	db      *mongo.Database
	idField string
}

var _ source.DocumentStore = (*Store)(nil)

type Config struct {
	Database *mongo.Database
	IDField  string // "" => DefaultIDField
}

func New(cfg Config) (*Store, error) {
	if cfg.Database == nil {
		return nil, ErrNilDatabase
	}
	f := cfg.IDField
	if f == "" {
		f = DefaultIDField
	}
	return &Store{db: cfg.Database, idField: f}, nil
}

// Connect dials uri and returns a store over database. The returned client is
// owned by the caller and must be disconnected by it.
func Connect(ctx context.Context, uri, database string) (*Store, *mongo.Client, error) {
	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	s, err := New(Config{Database: cl.Database(database)})
	if err != nil {
		_ = cl.Disconnect(ctx)
		return nil, nil, err
	}
	return s, cl, nil
}

// FindOne returns the single record of collection whose id field equals id.
func (s *Store) FindOne(ctx context.Context, collection, id string) (source.Document, bool, error) {
	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.D{{Key: s.idField, Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find %s/%s: %w", collection, id, err)
	}
	return source.Document(doc), true, nil
}
