package notify

import (
	"context"
	"time"

	"github.com/caesium-cloud/slate/internal/event"
	"github.com/caesium-cloud/slate/internal/metrics"
	"github.com/caesium-cloud/slate/pkg/log"
)

// Subscriber drains the bus into a Transport until its context ends.
type Subscriber struct {
	bus           event.Bus
	transport     Transport
	transportName string
	ready         chan struct{}
}

func NewSubscriber(bus event.Bus, transport Transport) *Subscriber {
	return &Subscriber{
		bus:       bus,
		transport: transport,
		ready:     make(chan struct{}),
	}
}

func (s *Subscriber) SetTransportName(name string) {
	s.transportName = name
}

// Ready is closed once the subscriber is receiving events.
func (s *Subscriber) Ready() <-chan struct{} {
	return s.ready
}

// Start blocks, forwarding events until ctx is cancelled, then closes the
// transport.
func (s *Subscriber) Start(ctx context.Context) error {
	filter := event.Filter{
		Types: []event.Type{
			event.TypeVersionUpdated,
			event.TypeTimelineBuilt,
		},
	}

	ch, err := s.bus.Subscribe(ctx, filter)
	if err != nil {
		return err
	}
	close(s.ready)

	for {
		select {
		case <-ctx.Done():
			return s.transport.Close()
		case evt, ok := <-ch:
			if !ok {
				return s.transport.Close()
			}
			s.handleEvent(ctx, evt)
		}
	}
}

func (s *Subscriber) handleEvent(ctx context.Context, evt event.Event) {
	start := time.Now()
	emitErr := s.transport.Emit(ctx, evt)
	duration := time.Since(start)

	transportLabel := s.transportName
	if transportLabel == "" {
		transportLabel = "unknown"
	}
	metrics.NotificationEmitDuration.WithLabelValues(transportLabel).Observe(duration.Seconds())

	if emitErr != nil {
		metrics.NotificationsEmittedTotal.WithLabelValues(transportLabel, "error").Inc()
		log.Error("notify: failed to emit event",
			"event_type", string(evt.Type),
			"version_id", evt.VersionID,
			"error", emitErr,
		)
		return
	}
	metrics.NotificationsEmittedTotal.WithLabelValues(transportLabel, "success").Inc()
}
