package client

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/rtshim/pkg/events"
)

// eventRetryDelay is how long to wait before reconnecting a dropped stream.
const eventRetryDelay = 2 * time.Second

// SubscribeEvents streams daemon events until ctx is done. The stream is
// reopened if the daemon goes away. The returned channel is closed when
// ctx is done.
func (c *Client) SubscribeEvents(ctx context.Context) <-chan events.Event {
	out := make(chan events.Event, 16)

	go func() {
		defer close(out)

		for {
			err := c.streamEvents(ctx, out)
			if ctx.Err() != nil {
				return
			}
			logrus.WithError(err).Debug("event stream ended, reconnecting")

			select {
			case <-ctx.Done():
				return
			case <-time.After(eventRetryDelay):
			}
		}
	}()

	return out
}

func (c *Client) streamEvents(ctx context.Context, out chan<- events.Event) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, ""); err != nil {
		return err
	}

	return readEvents(ctx, bufio.NewReader(resp.Body), out)
}

// readEvents parses a text/event-stream body. Comments and fields other
// than event and data are ignored; multiple data lines are joined with a
// newline.
func readEvents(ctx context.Context, r *bufio.Reader, out chan<- events.Event) error {
	var name string
	var data []string

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if len(data) > 0 {
				ev := events.Event{Name: name, Data: []byte(strings.Join(data, "\n"))}
				if ev.Name == "" {
					ev.Name = "message"
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			name = ""
			data = nil
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			data = append(data, value)
		}
	}
}
