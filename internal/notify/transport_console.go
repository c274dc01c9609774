package notify

import (
	"context"

	"github.com/caesium-cloud/slate/internal/event"
	"github.com/caesium-cloud/slate/pkg/log"
)

type consoleTransport struct{}

// NewConsoleTransport logs each event at info level.
func NewConsoleTransport() Transport {
	return &consoleTransport{}
}

func (t *consoleTransport) Emit(_ context.Context, e event.Event) error {
	log.Info("host notification",
		"event_type", string(e.Type),
		"event_id", e.ID.String(),
		"version_id", e.VersionID,
		"field_name", e.Field,
		"new_value", e.Value,
	)
	return nil
}

func (t *consoleTransport) Close() error { return nil }

type noopTransport struct{}

// NewNoopTransport discards every event.
func NewNoopTransport() Transport {
	return noopTransport{}
}

func (noopTransport) Emit(context.Context, event.Event) error { return nil }

func (noopTransport) Close() error { return nil }
