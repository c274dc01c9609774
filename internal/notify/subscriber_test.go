package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caesium-cloud/slate/internal/event"
	"github.com/caesium-cloud/slate/internal/metrics"
	metrictestutil "github.com/caesium-cloud/slate/internal/metrics/testutil"
)

func runSubscriber(t *testing.T, transport Transport, name string) (event.Bus, context.CancelFunc, chan error) {
	t.Helper()

	bus := event.New(10)
	sub := NewSubscriber(bus, transport)
	sub.SetTransportName(name)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sub.Start(ctx) }()

	select {
	case <-sub.Ready():
	case <-time.After(time.Second):
		t.Fatal("subscriber never became ready")
	}
	return bus, cancel, done
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

func TestSubscriberForwardsEvents(t *testing.T) {
	rec := &recordingTransport{}
	bus, cancel, done := runSubscriber(t, rec, "recording")

	before := metrictestutil.CounterValue(t, metrics.NotificationsEmittedTotal, "recording", "success")
	observed := metrictestutil.HistogramCount(t, metrics.NotificationEmitDuration, "recording")

	bus.Publish(event.VersionUpdated("v1", "status", "final"))
	waitFor(t, func() bool { return len(rec.received()) == 1 })

	got := rec.received()[0]
	if got.VersionID != "v1" || got.Field != "status" || got.Value != "final" {
		t.Errorf("unexpected event: %+v", got)
	}
	waitFor(t, func() bool {
		return metrictestutil.CounterValue(t, metrics.NotificationsEmittedTotal, "recording", "success") == before+1
	})
	if metrictestutil.HistogramCount(t, metrics.NotificationEmitDuration, "recording") != observed+1 {
		t.Error("emit duration not observed")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("start: %v", err)
	}
	rec.mu.Lock()
	closed := rec.closed
	rec.mu.Unlock()
	if !closed {
		t.Error("transport should be closed on shutdown")
	}
}

func TestSubscriberCountsFailures(t *testing.T) {
	rec := &recordingTransport{err: errors.New("sink down")}
	bus, cancel, done := runSubscriber(t, rec, "failing")
	defer func() {
		cancel()
		<-done
	}()

	before := metrictestutil.CounterValue(t, metrics.NotificationsEmittedTotal, "failing", "error")
	bus.Publish(event.VersionUpdated("v1", "status", "final"))

	waitFor(t, func() bool {
		return metrictestutil.CounterValue(t, metrics.NotificationsEmittedTotal, "failing", "error") == before+1
	})
}
