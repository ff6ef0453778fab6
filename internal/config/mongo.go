package config

import "time"

// MongoConfig содержит настройки подключения к MongoDB.
type MongoConfig struct {
	URI            string        `yaml:"uri" env:"NOTEKEEPER_MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `yaml:"database" env:"NOTEKEEPER_MONGO_DB" env-default:"notekeeper"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"NOTEKEEPER_MONGO_CONNECT_TIMEOUT" env-default:"10s"`
	MaxPoolSize    uint64        `yaml:"max_pool_size" env:"NOTEKEEPER_MONGO_MAX_POOL_SIZE" env-default:"20"`
}
