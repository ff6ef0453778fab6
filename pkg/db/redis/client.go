// Package redis создает клиента Redis, общего для ограничителя запросов и списка отозванных токенов.
package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"
	LogClosing    = "closing Redis client"
	ErrConnect    = "failed to connect to Redis"
)

// Client обертывает клиент Redis.
type Client struct {
	client *redis.Client
}

// NewClient создает клиента и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := logger.Log(ctx)
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	log.Info(ctx, LogConnecting, zap.String("addr", addr))

	rdb := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, ErrConnect, zap.Error(err), zap.String("addr", addr))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogConnected, zap.String("addr", addr))
	return &Client{client: rdb}, nil
}

// Close закрывает соединение с Redis.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	return c.client.Close()
}

// RawClient возвращает базовый Redis клиент для адаптеров.
func (c *Client) RawClient() *redis.Client {
	return c.client
}
