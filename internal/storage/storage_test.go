package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/config"
	"notekeeper/internal/storage"
)

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}

	st, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	assert.NotNil(t, st.Users)
	assert.NotNil(t, st.Notes)
	assert.NoError(t, st.Close(ctx))
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}

	st, err := storage.Open(context.Background(), cfg)
	assert.Nil(t, st)
	require.ErrorIs(t, err, storage.ErrUnknownDriver)
}

func TestOpenMongoRequiresURI(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMongo, ConnectAttempts: 1},
		Mongo:   config.MongoConfig{Database: "notekeeper"},
	}

	_, err := storage.Open(context.Background(), cfg)
	require.Error(t, err)
}
