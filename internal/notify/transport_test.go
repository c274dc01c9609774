package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/caesium-cloud/slate/internal/event"
	"github.com/google/uuid"
)

func testEvent() event.Event {
	return event.Event{
		ID:        uuid.MustParse("d46e465b-d358-4d32-83d4-df660ff614dd"),
		Type:      event.TypeVersionUpdated,
		VersionID: "8a7c1e2f-0b5d-4c39-9d61-3f0e8c2b1a47",
		Field:     "status",
		Value:     "approved",
		Timestamp: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestHTTPTransport(t *testing.T) {
	var receivedBody []byte
	var receivedContentType, receivedCustom string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		receivedCustom = r.Header.Get("X-Custom")
		body, _ := io.ReadAll(r.Body)
		receivedBody = body
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewHTTPTransport(HTTPTransportConfig{
		URL:     server.URL,
		Headers: map[string]string{"X-Custom": "test-value"},
		Timeout: 5 * time.Second,
	})

	if err := transport.Emit(context.Background(), testEvent()); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if receivedContentType != "application/json" {
		t.Errorf("content-type = %v, want application/json", receivedContentType)
	}
	if receivedCustom != "test-value" {
		t.Errorf("X-Custom = %v, want test-value", receivedCustom)
	}

	var parsed map[string]any
	if err := json.Unmarshal(receivedBody, &parsed); err != nil {
		t.Fatalf("unmarshal received body: %v", err)
	}
	if parsed["version_id"] != "8a7c1e2f-0b5d-4c39-9d61-3f0e8c2b1a47" {
		t.Errorf("version_id = %v", parsed["version_id"])
	}
	if parsed["field_name"] != "status" || parsed["new_value"] != "approved" {
		t.Errorf("field_name/new_value = %v/%v, want status/approved", parsed["field_name"], parsed["new_value"])
	}
}

func TestHTTPTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	transport := NewHTTPTransport(HTTPTransportConfig{URL: server.URL})

	err := transport.Emit(context.Background(), testEvent())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error = %v, want to contain '500'", err)
	}
}

func TestFileTransport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.ndjson")

	transport, err := NewFileTransport(path)
	if err != nil {
		t.Fatalf("create file transport: %v", err)
	}

	event1 := testEvent()
	event2 := testEvent()
	event2.Field = "artist"
	event2.Value = "Mei Lin"

	if err := transport.Emit(context.Background(), event1); err != nil {
		t.Fatalf("emit event1: %v", err)
	}
	if err := transport.Emit(context.Background(), event2); err != nil {
		t.Fatalf("emit event2: %v", err)
	}
	if err := transport.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var parsed event.Event
	if err := json.Unmarshal([]byte(lines[1]), &parsed); err != nil {
		t.Fatalf("unmarshal line 2: %v", err)
	}
	if parsed.Field != "artist" || parsed.Value != "Mei Lin" {
		t.Errorf("line 2 = %v/%v, want artist/Mei Lin", parsed.Field, parsed.Value)
	}
}

type recordingTransport struct {
	mu     sync.Mutex
	events []event.Event
	err    error
	closed bool
}

func (t *recordingTransport) Emit(_ context.Context, e event.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
	return t.err
}

func (t *recordingTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *recordingTransport) received() []event.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]event.Event(nil), t.events...)
}

func TestCompositeTransport(t *testing.T) {
	t1 := &recordingTransport{}
	t2 := &recordingTransport{}

	composite := NewCompositeTransport(t1, t2)

	if err := composite.Emit(context.Background(), testEvent()); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if len(t1.events) != 1 {
		t.Errorf("t1 received %d events, want 1", len(t1.events))
	}
	if len(t2.events) != 1 {
		t.Errorf("t2 received %d events, want 1", len(t2.events))
	}
	if err := composite.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !t1.closed || !t2.closed {
		t.Error("composite close should close every transport")
	}
}

func TestCompositeTransportAggregatesErrors(t *testing.T) {
	t1 := &recordingTransport{err: errors.New("t1 failed")}
	t2 := &recordingTransport{err: errors.New("t2 failed")}

	err := NewCompositeTransport(t1, t2).Emit(context.Background(), testEvent())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "t1 failed") || !strings.Contains(err.Error(), "t2 failed") {
		t.Errorf("error should mention both transports: %v", err)
	}
}

func TestConsoleAndNoopTransports(t *testing.T) {
	for _, transport := range []Transport{NewConsoleTransport(), NewNoopTransport()} {
		if err := transport.Emit(context.Background(), testEvent()); err != nil {
			t.Errorf("emit: %v", err)
		}
		if err := transport.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}
}
