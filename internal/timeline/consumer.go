package timeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caesium-cloud/slate/pkg/log"
	"github.com/pkg/errors"
)

// NameHeader carries the timeline's display name alongside the document.
const NameHeader = "X-Slate-Timeline-Name"

// Consumer accepts a serialised timeline and loads it somewhere slate
// cannot see, typically a player or editor.
type Consumer interface {
	Load(ctx context.Context, name, document string) error
}

type HTTPConsumerConfig struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

type httpConsumer struct {
	client  *http.Client
	url     string
	headers map[string]string
}

// NewHTTPConsumer posts each document to cfg.URL.
func NewHTTPConsumer(cfg HTTPConsumerConfig) Consumer {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &httpConsumer{
		client:  &http.Client{Timeout: timeout},
		url:     strings.TrimRight(cfg.URL, "/"),
		headers: cfg.Headers,
	}
}

func (c *httpConsumer) Load(ctx context.Context, name, document string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(document))
	if err != nil {
		return errors.Wrap(err, "timeline: build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(NameHeader, name)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "timeline: send request")
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("timeline: consumer responded %d", resp.StatusCode)
	}

	return nil
}

type logConsumer struct{}

// NewLogConsumer records each document in the log instead of sending it.
func NewLogConsumer() Consumer {
	return logConsumer{}
}

func (logConsumer) Load(_ context.Context, name, document string) error {
	log.Info("timeline ready", "name", name, "bytes", len(document))
	return nil
}
