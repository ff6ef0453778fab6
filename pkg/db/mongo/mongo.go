// Package mongo открывает подключение к MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to MongoDB"
	LogConnected  = "successfully connected to MongoDB"
	LogClosing    = "disconnecting from MongoDB"
)

// Константы для сообщений об ошибках.
const (
	ErrConnect  = "failed to connect to MongoDB"
	ErrPing     = "failed to ping MongoDB"
	ErrEmptyURI = "mongo uri is empty"
)

// Options описывает параметры подключения.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// Database хранит клиента MongoDB и выбранную базу.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB и проверяет соединение.
func New(ctx context.Context, opts Options) (*Database, error) {
	log := logger.Log(ctx)

	if opts.URI == "" {
		return nil, fmt.Errorf("%s: %s", ErrConnect, ErrEmptyURI)
	}

	log.Info(ctx, LogConnecting, zap.String("database", opts.Database))

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(opts.ConnectTimeout)
	}
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		log.Error(ctx, ErrPing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPing, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{client: client, db: client.Database(opts.Database)}, nil
}

// DB возвращает рабочую базу данных.
func (d *Database) DB() *mongo.Database {
	return d.db
}

// Collection возвращает коллекцию рабочей базы.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping проверяет доступность MongoDB.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close отключается от MongoDB.
func (d *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	return d.client.Disconnect(ctx)
}
