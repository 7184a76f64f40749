package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	Port            string        `mapstructure:"PORT"`
	StaleAfter      time.Duration `mapstructure:"STALE_AFTER"`
	ReapSchedule    string        `mapstructure:"REAP_SCHEDULE"`
	ReapOnStart     bool          `mapstructure:"REAP_ON_START"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	SessionTokenTTL time.Duration `mapstructure:"SESSION_TOKEN_TTL"`
}

var AppConfig *Config

// defaults also registers every key, so AutomaticEnv values reach Unmarshal
// even when no .env file is present.
var defaults = map[string]any{
	"DATABASE_URL":      "",
	"JWT_SECRET":        "",
	"PORT":              "8080",
	"STALE_AFTER":       "12h",
	"REAP_SCHEDULE":     "@every 1h",
	"REAP_ON_START":     true,
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "text",
	"SESSION_TOKEN_TTL": "720h",
}

// LoadConfig loads the configuration from a .env file and environment
// variables into AppConfig, exiting on invalid values.
func LoadConfig() {
	cfg, err := Load(".")
	if err != nil {
		logrus.Fatalf("Unable to load configuration: %v", err)
	}
	AppConfig = cfg
}

// Load reads <dir>/.env (optional) and the environment.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
		logrus.Warn(".env file not found, loading from environment variables")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.StaleAfter <= 0 {
		return fmt.Errorf("STALE_AFTER must be positive, got %s", c.StaleAfter)
	}
	if c.SessionTokenTTL <= 0 {
		return fmt.Errorf("SESSION_TOKEN_TTL must be positive, got %s", c.SessionTokenTTL)
	}
	if c.ReapSchedule == "" {
		return errors.New("REAP_SCHEDULE must not be empty")
	}
	return nil
}

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
