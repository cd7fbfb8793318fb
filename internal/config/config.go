package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary    Primary          `koanf:"primary"`
	Server     ServerConfig     `koanf:"server"`
	Slack      SlackConfig      `koanf:"slack"`
	Downstream DownstreamConfig `koanf:"downstream"`
	Retry      RetryConfig      `koanf:"retry"`
	Logger     LoggerConfig     `koanf:"logger"`
	Worker     WorkerConfig     `koanf:"worker"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type SlackConfig struct {
	APIToken      string        `koanf:"api_token" validate:"required"`
	SigningSecret string        `koanf:"signing_secret" validate:"required"`
	BaseURL       string        `koanf:"base_url" validate:"required"`
	ConnTimeout   time.Duration `koanf:"conn_timeout" validate:"required"`
	// AcceptReaction is the emoji name (without colons) that resolves
	// a swap request.
	AcceptReaction string `koanf:"accept_reaction" validate:"required"`
}

// DownstreamConfig points at the broker that receives swap-confirmed
// events. NATSURL empty means downstream publishing is disabled.
type DownstreamConfig struct {
	NATSURL        string        `koanf:"nats_url"`
	Subject        string        `koanf:"subject" validate:"required"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"required"`
}

type RetryConfig struct {
	BaseDelay  int32 `koanf:"base_delay"`
	MaxRetries int32 `koanf:"max_retries"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type WorkerConfig struct {
	Count     int `koanf:"count" validate:"required"`
	QueueSize int `koanf:"queue_size" validate:"required"`
}

// defaults covers everything that has a sane value out of the box.
// Credentials deliberately have none.
var defaults = map[string]interface{}{
	"primary.env":                "development",
	"server.port":                "8080",
	"server.read_timeout":        "10s",
	"server.write_timeout":       "10s",
	"server.idle_timeout":        "60s",
	"slack.base_url":             "https://slack.com/api",
	"slack.conn_timeout":         "10s",
	"slack.accept_reaction":      "+1",
	"downstream.subject":         "oncall.swap.confirmed",
	"downstream.connect_timeout": "5s",
	"retry.base_delay":           1,
	"retry.max_retries":          3,
	"logger.level":               "info",
	"logger.format":              "text",
	"worker.count":               4,
	"worker.queue_size":          64,
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider("FOMOBOT_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "FOMOBOT_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
