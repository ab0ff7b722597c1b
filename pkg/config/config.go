package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "DASHBOARD_"

const (
	TransportNetHTTP = "nethttp"
	TransportFiber   = "fiber"
)

// Config is the runtime configuration of the console server.
type Config struct {
	Addr              string        `env:"ADDR" envDefault:":8080" validate:"required"`
	BasePath          string        `env:"BASE_PATH" envDefault:"/admin"`
	Transport         string        `env:"TRANSPORT" envDefault:"nethttp" validate:"oneof=nethttp fiber"`
	RefreshInterval   time.Duration `env:"REFRESH_INTERVAL" envDefault:"5s" validate:"gt=0"`
	ShellTTL          time.Duration `env:"SHELL_TTL" envDefault:"30m" validate:"gt=0"`
	SweepInterval     time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m" validate:"gt=0"`
	ChartCacheTTL     time.Duration `env:"CHART_CACHE_TTL" envDefault:"1m" validate:"gte=0"`
	EChartsAssetsHost string        `env:"ECHARTS_ASSETS_HOST" validate:"omitempty,url"`
	Fixtures          string        `env:"FIXTURES" validate:"omitempty,file"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	RateLimit         int           `env:"RATE_LIMIT" envDefault:"600" validate:"gt=0"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:"," validate:"dive,url"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	Dev               bool          `env:"DEV"`
}

var validate = validator.New()

// Load reads an optional dotenv file, then the process environment. A missing
// default .env is ignored; a missing explicit file is an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}
	return Parse(nil)
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
	if err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Level maps LogLevel onto a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the slog logger described by LogFormat and LogLevel.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
