package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/caesium-cloud/slate/pkg/env"
)

type Config struct {
	// Transport is a comma-separated list of console, file, http or none.
	Transport string
	URL       string
	Headers   string
	FilePath  string
	Timeout   time.Duration
}

// ConfigFromEnv reads the SLATE_NOTIFY_* variables.
func ConfigFromEnv(vars env.Environment) Config {
	return Config{
		Transport: vars.NotifyTransport,
		URL:       vars.NotifyURL,
		Headers:   vars.NotifyHeaders,
		FilePath:  vars.NotifyFilePath,
		Timeout:   vars.NotifyTimeout,
	}
}

// BuildTransport builds the transport named by cfg. Several names yield a
// composite that delivers to each.
func BuildTransport(cfg Config) (Transport, error) {
	var transports []Transport
	for _, name := range strings.Split(cfg.Transport, ",") {
		t, err := buildOne(cfg, strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			for _, built := range transports {
				_ = built.Close()
			}
			return nil, err
		}
		transports = append(transports, t)
	}

	if len(transports) == 1 {
		return transports[0], nil
	}
	return NewCompositeTransport(transports...), nil
}

func buildOne(cfg Config, transportType string) (Transport, error) {
	switch transportType {
	case "http":
		url := strings.TrimSpace(cfg.URL)
		if url == "" {
			return nil, fmt.Errorf("notify: SLATE_NOTIFY_URL is required for HTTP transport")
		}
		return NewHTTPTransport(HTTPTransportConfig{
			URL:     url,
			Headers: ParseHeaders(cfg.Headers),
			Timeout: cfg.Timeout,
		}), nil

	case "console":
		return NewConsoleTransport(), nil

	case "file":
		if strings.TrimSpace(cfg.FilePath) == "" {
			return nil, fmt.Errorf("notify: SLATE_NOTIFY_FILE_PATH is required for file transport")
		}
		return NewFileTransport(cfg.FilePath)

	case "none", "":
		return NewNoopTransport(), nil

	default:
		return nil, fmt.Errorf("notify: unsupported transport type %q", transportType)
	}
}

// ParseHeaders reads "k=v,k2=v2" into a header map.
func ParseHeaders(raw string) map[string]string {
	headers := make(map[string]string)
	if raw == "" {
		return headers
	}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) == 2 {
			headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return headers
}
