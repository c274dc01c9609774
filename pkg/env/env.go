package env

import (
	"time"

	"github.com/caesium-cloud/slate/pkg/log"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

var variables = new(Environment)

// Process the environment variables set for slate.
func Process() error {
	if err := envconfig.Process("slate", variables); err != nil {
		return errors.Wrap(err, "failed to process environment variables")
	}

	// set the log level
	if err := log.SetLevel(variables.LogLevel); err != nil {
		return errors.Wrap(err, "failed to set log level")
	}

	return nil
}

// Variables returns the processed environment variables.
func Variables() Environment {
	return *variables
}

// Environment defines the environment variables used
// by slate.
type Environment struct {
	LogLevel        string        `default:"info" split_words:"true"`
	Port            int           `default:"8080" split_words:"true"`
	Seed            int64         `default:"1234" split_words:"true"`
	FixturePath     string        `default:"" split_words:"true"`
	EventBuffer     int           `default:"100" split_words:"true"`
	NotifyTransport string        `default:"console" split_words:"true"`
	NotifyURL       string        `default:"" split_words:"true"`
	NotifyHeaders   string        `default:"" split_words:"true"`
	NotifyFilePath  string        `default:"" split_words:"true"`
	NotifyTimeout   time.Duration `default:"5s" split_words:"true"`
	TimelineURL     string        `default:"" split_words:"true"`
	TimelineTimeout time.Duration `default:"10s" split_words:"true"`
}
