package notify

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/caesium-cloud/slate/internal/event"
	"github.com/pkg/errors"
)

type fileTransport struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileTransport appends each event to path as one JSON line.
func NewFileTransport(path string) (Transport, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "notify: open file")
	}
	return &fileTransport{file: f}, nil
}

func (t *fileTransport) Emit(_ context.Context, e event.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err = t.file.Write(data)
	return err
}

func (t *fileTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Close()
}
