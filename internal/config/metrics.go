package config

// MetricsConfig настраивает экспорт метрик Prometheus.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"NOTEKEEPER_METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"NOTEKEEPER_METRICS_PATH" env-default:"/metrics"`
}
