package client

import (
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config captures how a host reaches a slate server.
type Config struct {
	BaseURL     *url.URL
	HTTPTimeout time.Duration
}

type environment struct {
	BaseURL     string        `default:"http://127.0.0.1:8080" split_words:"true"`
	HTTPTimeout time.Duration `default:"10s" split_words:"true"`
}

// LoadConfig reads SLATE_BASE_URL and SLATE_HTTP_TIMEOUT.
func LoadConfig() (*Config, error) {
	var vars environment
	if err := envconfig.Process("slate", &vars); err != nil {
		return nil, errors.Wrap(err, "failed to process client environment")
	}

	u, err := url.Parse(vars.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url %q", vars.BaseURL)
	}

	return &Config{BaseURL: u, HTTPTimeout: vars.HTTPTimeout}, nil
}
