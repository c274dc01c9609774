// Package notify forwards bus events to the host notification sink.
package notify

import (
	"context"

	"github.com/caesium-cloud/slate/internal/event"
)

type Transport interface {
	Emit(ctx context.Context, e event.Event) error

	Close() error
}
