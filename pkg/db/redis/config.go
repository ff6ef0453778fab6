package redis

import "time"

// Значения по умолчанию для подключения к Redis.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultPoolSize = 10
	DefaultTimeout  = 5 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host            string
	Port            int
	Password        string
	DB              int
	PoolSize        int
	MinIdle         int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxConnLifetime time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		PoolSize:     DefaultPoolSize,
		DialTimeout:  DefaultTimeout,
		ReadTimeout:  DefaultTimeout,
		WriteTimeout: DefaultTimeout,
	}
}
