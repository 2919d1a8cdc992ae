package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/validate/pkg/logger"
	"github.com/dmitrymomot/validate/pkg/store"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the process configuration shared by the binaries.
type Config struct {
	Env             string        `env:"VALIDATE_ENV" envDefault:"development"`
	LogLevel        string        `env:"VALIDATE_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"VALIDATE_LOG_FORMAT"`
	ValidationsFile string        `env:"VALIDATE_VALIDATIONS_FILE"`
	HTTPAddr        string        `env:"VALIDATE_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"VALIDATE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Store           string        `env:"VALIDATE_STORE" envDefault:"memory"`
	StoreCapacity   int           `env:"VALIDATE_STORE_CAPACITY" envDefault:"10000"`
	StateTTL        time.Duration `env:"VALIDATE_STATE_TTL" envDefault:"1h"`

	Redis store.RedisConfig
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("%w: VALIDATE_STORE must be %q or %q, got %q", ErrInvalidConfig, StoreMemory, StoreRedis, c.Store)
	}
	if c.LogFormat != "" && c.LogFormat != string(logger.FormatJSON) && c.LogFormat != string(logger.FormatText) {
		return fmt.Errorf("%w: VALIDATE_LOG_FORMAT must be %q or %q, got %q", ErrInvalidConfig, logger.FormatJSON, logger.FormatText, c.LogFormat)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: VALIDATE_LOG_LEVEL: %v", ErrInvalidConfig, err)
	}
	if c.StateTTL < 0 {
		return fmt.Errorf("%w: VALIDATE_STATE_TTL must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoggerOptions translates the logging settings into logger options. The
// environment picks the defaults; explicit level and format win.
func (c Config) LoggerOptions(service string) []logger.Option {
	opts := []logger.Option{logger.WithEnvironment(strings.ToLower(c.Env), service)}
	if c.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(c.LogLevel))
	}
	if c.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(c.LogFormat)))
	}
	return opts
}
