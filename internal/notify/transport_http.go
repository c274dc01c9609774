package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caesium-cloud/slate/internal/event"
	"github.com/pkg/errors"
)

type HTTPTransportConfig struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

type httpTransport struct {
	client  *http.Client
	url     string
	headers map[string]string
}

// NewHTTPTransport POSTs each event as JSON to cfg.URL.
func NewHTTPTransport(cfg HTTPTransportConfig) Transport {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &httpTransport{
		client:  &http.Client{Timeout: timeout},
		url:     strings.TrimRight(cfg.URL, "/"),
		headers: cfg.Headers,
	}
}

func (t *httpTransport) Emit(ctx context.Context, e event.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "notify: marshal event")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "notify: build request")
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "notify: send request")
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: sink responded %d", resp.StatusCode)
	}

	return nil
}

func (t *httpTransport) Close() error { return nil }
