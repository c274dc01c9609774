package event

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/caesium-cloud/slate/internal/metrics"
	"github.com/google/uuid"
)

// Type represents the type of event.
type Type string

const (
	TypeVersionUpdated Type = "version_updated"
	TypeTimelineBuilt  Type = "timeline_built"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 100

// Event represents a change the host should hear about. For
// version_updated events VersionID, Field and Value describe the write.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      Type            `json:"type"`
	VersionID string          `json:"version_id,omitempty"`
	Field     string          `json:"field_name,omitempty"`
	Value     any             `json:"new_value"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// VersionUpdated builds the event emitted for a changed field.
func VersionUpdated(versionID, field string, value any) Event {
	return Event{
		ID:        uuid.New(),
		Type:      TypeVersionUpdated,
		VersionID: versionID,
		Field:     field,
		Value:     value,
		Timestamp: time.Now().UTC(),
	}
}

// Filter defines criteria for receiving events.
type Filter struct {
	VersionID string
	Types     []Type
}

// Bus defines the event bus interface.
type Bus interface {
	Publish(e Event)
	Subscribe(ctx context.Context, filter Filter) (<-chan Event, error)
}

type bus struct {
	subscribers map[chan Event]Filter
	buffer      int
	mu          sync.RWMutex
}

// New creates a new event bus whose subscribers each buffer up to
// buffer events. A non-positive buffer uses DefaultBuffer.
func New(buffer int) Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &bus{
		subscribers: make(map[chan Event]Filter),
		buffer:      buffer,
	}
}

// Publish never blocks: a subscriber whose buffer is full misses the event.
func (b *bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	metrics.NotificationsPublishedTotal.WithLabelValues(string(e.Type)).Inc()

	for ch, filter := range b.subscribers {
		if b.matches(filter, e) {
			select {
			case ch <- e:
			default:
				metrics.NotificationsDroppedTotal.WithLabelValues(string(e.Type)).Inc()
			}
		}
	}
}

func (b *bus) Subscribe(ctx context.Context, filter Filter) (<-chan Event, error) {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	b.subscribers[ch] = filter
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subscribers, ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}

func (b *bus) matches(filter Filter, e Event) bool {
	if filter.VersionID != "" && filter.VersionID != e.VersionID {
		return false
	}
	if len(filter.Types) > 0 {
		found := false
		for _, t := range filter.Types {
			if t == e.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
