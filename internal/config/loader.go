package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"countdown/internal/core/countdown"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultDateOffset = 30 * 24 * time.Hour

// Load reads an optional .env file and then parses the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		logrus.Debugf("no .env file found, using process environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}
	return cfg, nil
}

// Validate checks field formats and ranges.
func (c *Config) Validate() error {
	endpoint, err := url.Parse(c.Endpoint)
	if err != nil || endpoint.Host == "" || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return fmt.Errorf("invalid COUNTDOWN_ENDPOINT: %q (must be an http(s) URL)", c.Endpoint)
	}

	if c.TickInterval < 100*time.Millisecond || c.TickInterval > time.Minute {
		return fmt.Errorf("invalid COUNTDOWN_TICK_INTERVAL: %s (must be 100ms-1m)", c.TickInterval)
	}

	if c.DefaultDate != "" {
		if _, err := countdown.ParseTarget(c.DefaultDate); err != nil {
			return fmt.Errorf("invalid COUNTDOWN_DEFAULT_DATE: %w", err)
		}
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return nil
}

// InitialDate returns the picker's starting value.
func (c *Config) InitialDate(now time.Time) string {
	if c.DefaultDate != "" {
		return c.DefaultDate
	}
	return countdown.FormatDate(now.Add(defaultDateOffset))
}

// ConfigureLogger applies LOG_LEVEL to logger.
func (c *Config) ConfigureLogger(logger *logrus.Logger) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
