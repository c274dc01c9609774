package notify

import (
	"context"
	"errors"

	"github.com/caesium-cloud/slate/internal/event"
)

type compositeTransport struct {
	transports []Transport
}

// NewCompositeTransport fans every event out to each transport in turn.
func NewCompositeTransport(transports ...Transport) Transport {
	return &compositeTransport{transports: transports}
}

func (t *compositeTransport) Emit(ctx context.Context, e event.Event) error {
	var errs []error
	for _, tr := range t.transports {
		if err := tr.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *compositeTransport) Close() error {
	var errs []error
	for _, tr := range t.transports {
		if err := tr.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
