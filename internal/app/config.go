package app

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/klabast/wb-services/aktivitaeten/internal/api"
)

// Constants
const (
	DefaultMessageTimeout = 4500 * time.Millisecond

	// Element IDs of the page skeleton
	ListID     = "activities-list"
	SelectID   = "activity"
	EmailID    = "email"
	MessageID  = "message"
	SignupForm = "signup-form"

	// Classes the renderer and reconciler agree on
	CardClass         = "activity-card"
	SpotsClass        = "spots"
	ParticipantsClass = "participants-list"
	ParticipantClass  = "participant"
	EmailClass        = "participant-email"
	RemoveClass       = "delete-btn"
	HiddenClass       = "hidden"

	// Data attributes used for action dispatch
	AttrAction   = "data-action"
	AttrActivity = "data-activity"
	AttrEmail    = "data-email"

	// Error messages
	ErrInternalServer = "Internal server error"
	ErrInvalidForm    = "Invalid form data"
	ErrInvalidAction  = "Invalid action"
)

// Config holds the runtime configuration. Environment variables are read
// first, command line flags override them.
type Config struct {
	APIURL         string        `env:"AKTIVITAETEN_API_URL" envDefault:"http://localhost:8000"`
	Port           int           `env:"AKTIVITAETEN_PORT" envDefault:"8080"`
	Lang           string        `env:"AKTIVITAETEN_LANG" envDefault:"de"`
	MessageTimeout time.Duration `env:"AKTIVITAETEN_MESSAGE_TIMEOUT" envDefault:"4500ms"`
	HTTPTimeout    time.Duration `env:"AKTIVITAETEN_HTTP_TIMEOUT" envDefault:"0s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// RegisterFlags binds the flag-configurable settings to fs, using the
// current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.APIURL, "api", c.APIURL, "Base URL of the activities API")
	fs.IntVar(&c.Port, "port", c.Port, "Port to listen on")
	fs.StringVar(&c.Lang, "lang", c.Lang, "UI language (de, en)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
}

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api url %q must be an absolute http(s) url", c.APIURL)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MessageTimeout <= 0 {
		return errors.New("message timeout must be positive")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("http timeout must not be negative")
	}
	return nil
}

// NewAPIClient builds the activities API client described by the config.
func (c *Config) NewAPIClient(logger *slog.Logger) (*api.Client, error) {
	return api.New(c.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: c.HTTPTimeout}),
		api.WithLogger(logger),
	)
}
