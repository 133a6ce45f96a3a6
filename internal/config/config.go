package config

import "time"

// Config holds process configuration loaded from the environment.
type Config struct {
	// Endpoint is the remote countdown base address; the date is appended as a path segment.
	Endpoint      string        `env:"COUNTDOWN_ENDPOINT" envDefault:"https://digidates.de/api/v1/countdown"`
	RemoteEnabled bool          `env:"COUNTDOWN_REMOTE_ENABLED" envDefault:"true"`
	TickInterval  time.Duration `env:"COUNTDOWN_TICK_INTERVAL" envDefault:"1s"`
	// DefaultDate pre-fills the date picker. Empty means 30 days from startup.
	DefaultDate string `env:"COUNTDOWN_DEFAULT_DATE"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// MetricsAddr enables the Prometheus listener when set, e.g. 127.0.0.1:9464.
	MetricsAddr string `env:"METRICS_ADDR"`
}
