package config

// Поддерживаемые драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// StorageConfig выбирает реализацию хранилища пользователей и заметок.
type StorageConfig struct {
	Driver          string `yaml:"driver" env:"NOTEKEEPER_STORAGE_DRIVER" env-default:"postgres"`
	ConnectAttempts int    `yaml:"connect_attempts" env:"NOTEKEEPER_STORAGE_CONNECT_ATTEMPTS" env-default:"5"`
}
