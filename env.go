package farfetch

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig is the environment-derived client configuration consumed by
// NewFromEnv. With the default prefix the variables are FARFETCH_BASE_URL,
// FARFETCH_TIMEOUT, FARFETCH_USER_AGENT and FARFETCH_DEBUG.
type EnvConfig struct {
	BaseURL   string        `envconfig:"BASE_URL"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s"`
	UserAgent string        `envconfig:"USER_AGENT"`
	Debug     bool          `envconfig:"DEBUG"`
}

// NewFromEnv constructs a Client from environment variables under the given
// prefix ("FARFETCH" when empty). Extra options apply after the environment
// and win on conflict.
func NewFromEnv(prefix string, extra ...Option) (*Client, error) {
	if prefix == "" {
		prefix = "FARFETCH"
	}

	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	options := []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.Timeout),
	}
	if cfg.UserAgent != "" {
		options = append(options, WithDefaultHeader("User-Agent", cfg.UserAgent))
	}
	if cfg.Debug {
		options = append(options, WithSimpleLogger())
	}
	options = append(options, extra...)

	client := New(options...)
	if err := client.ValidationError(); err != nil {
		return nil, err
	}
	return client, nil
}
