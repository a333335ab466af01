// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config is read once from the process environment at startup and immutable
// afterward. Validation is exhaustive: every violation is collected and
// reported together so a broken deployment surfaces all its problems at once.
type Config struct {
	BotToken     string `envconfig:"BOT_TOKEN" validate:"required"`
	RawChannelID string `envconfig:"CHANNEL_ID" validate:"required"`

	WebhookURL string `envconfig:"WEBHOOK_URL" validate:"omitempty,url"`
	UseWebhook bool   `envconfig:"USE_WEBHOOK" default:"false"`
	Dev        bool   `envconfig:"DEVELOPMENT" default:"false"`

	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"10000" validate:"min=1,max=65535"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"` // json|console

	UnbanTimeout    time.Duration `envconfig:"UNBAN_TIMEOUT" default:"15s"`
	DispatchTimeout time.Duration `envconfig:"DISPATCH_TIMEOUT" default:"10s"`
	MaxConnections  int           `envconfig:"MAX_CONNECTIONS" default:"100"`
	QueueSize       int           `envconfig:"QUEUE_SIZE" default:"64" validate:"min=1"`

	TemplatesFile string `envconfig:"TEMPLATES_FILE"`

	// ChannelID is RawChannelID parsed; set by Load after validation.
	ChannelID int64 `ignored:"true" validate:"-"`
}

// Load reads and validates configuration from the environment. The returned
// error (if any) lists every violated constraint, one per line.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	var violations []string

	v := validator.New()
	if err := v.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range verrs {
			violations = append(violations, describe(fe))
		}
	}

	if cfg.RawChannelID != "" {
		id, err := strconv.ParseInt(cfg.RawChannelID, 10, 64)
		if err != nil {
			violations = append(violations, "CHANNEL_ID must be an integer")
		} else {
			cfg.ChannelID = id
		}
	}
	if cfg.UseWebhook && cfg.WebhookURL == "" {
		violations = append(violations, "WEBHOOK_URL is required when USE_WEBHOOK is set")
	}

	if len(violations) > 0 {
		return nil, fmt.Errorf("configuration errors:\n  - %s", strings.Join(violations, "\n  - "))
	}
	return &cfg, nil
}

// WebhookPath derives the update-receiver path from the bot token so the
// endpoint is not guessable. Falls back to a fixed path when no token is set.
func (c *Config) WebhookPath() string {
	if c.BotToken == "" {
		return "/webhook"
	}
	return "/" + c.BotToken
}

// WebhookEnabled reports whether the bot registers a webhook (vs long-poll).
func (c *Config) WebhookEnabled() bool {
	return c.UseWebhook && c.WebhookURL != ""
}

func (c *Config) Mode() string {
	if c.Dev {
		return "development"
	}
	return "production"
}

func describe(fe validator.FieldError) string {
	name := envName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "url":
		return name + " must be a valid URL"
	case "min", "max":
		return fmt.Sprintf("%s is out of range (%s=%s)", name, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", name, fe.Tag())
	}
}

// envName maps struct field names back to their environment variable names
// for diagnostics.
func envName(field string) string {
	switch field {
	case "BotToken":
		return "BOT_TOKEN"
	case "RawChannelID":
		return "CHANNEL_ID"
	case "WebhookURL":
		return "WEBHOOK_URL"
	case "Port":
		return "PORT"
	case "QueueSize":
		return "QUEUE_SIZE"
	default:
		return strings.ToUpper(field)
	}
}
