package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewRequiresDatabase(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNilDatabase)
}

// Runs against a live server when MONGO_DSN is set, e.g. mongodb://localhost:27017.
func TestFindOneIntegration(t *testing.T) {
	dsn := os.Getenv("MONGO_DSN")
	if dsn == "" {
		t.Skip("MONGO_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, cl, err := Connect(ctx, dsn, "doccache_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = cl.Database("doccache_test").Drop(context.Background())
		_ = cl.Disconnect(context.Background())
	})

	_, err = cl.Database("doccache_test").Collection("accounts").InsertOne(ctx,
		bson.M{"id": "fokan9ftxm4lpcokzox6asiq", "name": "Ada"})
	require.NoError(t, err)

	doc, ok, err := s.FindOne(ctx, "accounts", "fokan9ftxm4lpcokzox6asiq")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fokan9ftxm4lpcokzox6asiq", doc["id"])
	assert.Equal(t, "Ada", doc["name"])

	_, ok, err = s.FindOne(ctx, "accounts", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
