package notify

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/caesium-cloud/slate/pkg/env"
)

func TestBuildTransportHTTP(t *testing.T) {
	transport, err := BuildTransport(Config{
		Transport: "http",
		URL:       "http://localhost:5000/notify",
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatalf("BuildTransport: %v", err)
	}
	if transport == nil {
		t.Fatal("transport is nil")
	}
}

func TestBuildTransportHTTPMissingURL(t *testing.T) {
	_, err := BuildTransport(Config{Transport: "http"})
	if err == nil {
		t.Fatal("expected error for missing URL")
	}
	if !strings.Contains(err.Error(), "SLATE_NOTIFY_URL") {
		t.Errorf("error = %v, want mention of SLATE_NOTIFY_URL", err)
	}
}

func TestBuildTransportFile(t *testing.T) {
	transport, err := BuildTransport(Config{
		Transport: "file",
		FilePath:  filepath.Join(t.TempDir(), "events.ndjson"),
	})
	if err != nil {
		t.Fatalf("BuildTransport: %v", err)
	}
	if err := transport.Close(); err != nil {
		t.Fatalf("close transport: %v", err)
	}
}

func TestBuildTransportFileMissingPath(t *testing.T) {
	if _, err := BuildTransport(Config{Transport: "file"}); err == nil {
		t.Fatal("expected error for missing file path")
	}
}

func TestBuildTransportComposite(t *testing.T) {
	transport, err := BuildTransport(Config{
		Transport: "console, file",
		FilePath:  filepath.Join(t.TempDir(), "events.ndjson"),
	})
	if err != nil {
		t.Fatalf("BuildTransport: %v", err)
	}
	if _, ok := transport.(*compositeTransport); !ok {
		t.Errorf("transport = %T, want *compositeTransport", transport)
	}
	if err := transport.Close(); err != nil {
		t.Fatalf("close transport: %v", err)
	}
}

func TestBuildTransportNone(t *testing.T) {
	transport, err := BuildTransport(Config{Transport: "none"})
	if err != nil {
		t.Fatalf("BuildTransport: %v", err)
	}
	if _, ok := transport.(noopTransport); !ok {
		t.Errorf("transport = %T, want noopTransport", transport)
	}
}

func TestBuildTransportUnknown(t *testing.T) {
	_, err := BuildTransport(Config{Transport: "kafka"})
	if err == nil {
		t.Fatal("expected error for unknown transport")
	}
	if !strings.Contains(err.Error(), "kafka") {
		t.Errorf("error = %v, want mention of kafka", err)
	}
}

func TestParseHeaders(t *testing.T) {
	headers := ParseHeaders("Authorization=Bearer abc, X-Team = pipeline,broken")
	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(headers))
	}
	if headers["Authorization"] != "Bearer abc" {
		t.Errorf("Authorization = %q", headers["Authorization"])
	}
	if headers["X-Team"] != "pipeline" {
		t.Errorf("X-Team = %q", headers["X-Team"])
	}
	if len(ParseHeaders("")) != 0 {
		t.Error("empty input should yield no headers")
	}
}

func TestConfigFromEnv(t *testing.T) {
	cfg := ConfigFromEnv(env.Environment{
		NotifyTransport: "http",
		NotifyURL:       "http://host/notify",
		NotifyHeaders:   "a=b",
		NotifyTimeout:   time.Second,
	})
	if cfg.Transport != "http" || cfg.URL != "http://host/notify" || cfg.Headers != "a=b" || cfg.Timeout != time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
