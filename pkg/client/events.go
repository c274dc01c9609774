package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/caesium-cloud/slate/internal/event"
	"github.com/pkg/errors"
)

// Event is one notification from the server's event stream.
type Event = event.Event

// Events opens the server's event stream, optionally narrowed to one
// version and to the given types. The channel closes when ctx ends or the
// stream drops.
func (c *Client) Events(ctx context.Context, versionID string, types ...event.Type) (<-chan Event, error) {
	query := url.Values{}
	if versionID != "" {
		query.Set("version_id", versionID)
	}
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		query.Set("types", strings.Join(names, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve("/v1/events", query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "open event stream")
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, errors.Wrap(decodeError(resp), "open event stream")
	}

	ch := make(chan Event, event.DefaultBuffer)

	go func() {
		defer resp.Body.Close()
		defer close(ch)

		scanner := bufio.NewScanner(resp.Body)
		var (
			currentType event.Type
			currentData []byte
		)

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				if len(currentData) > 0 {
					var evt Event
					if err := json.Unmarshal(currentData, &evt); err == nil {
						if evt.Type == "" {
							evt.Type = currentType
						}
						select {
						case ch <- evt:
						case <-ctx.Done():
							return
						}
					}
				}
				currentType = ""
				currentData = nil
				continue
			}

			// comment or ping
			if bytes.HasPrefix(line, []byte(":")) {
				continue
			}

			field, value, ok := bytes.Cut(line, []byte(":"))
			if !ok {
				continue
			}
			value = bytes.TrimPrefix(value, []byte(" "))

			switch string(field) {
			case "event":
				currentType = event.Type(value)
			case "data":
				currentData = append([]byte(nil), value...)
			}
		}
	}()

	return ch, nil
}
