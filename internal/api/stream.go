package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"tracker/internal/logging"
)

// ListenToUpdates opens the server's event stream and forwards change
// notifications until the stream ends or the returned cancel func is
// called. Malformed events are dropped; the stream is a trigger, not a
// data channel.
func (c *HTTPClient) ListenToUpdates(ctx context.Context, authToken string) (<-chan UpdateEvent, func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+UpdatesPath, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	req.SetBasicAuth(authToken, TokenAuthPassword)
	req.Header.Set("Accept", "text/event-stream")

	// The stream outlives any per-request timeout, so it gets its own
	// client; lifetime is controlled through the request context.
	httpClient := &http.Client{Transport: c.http.Transport}
	resp, err := httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		cancel()
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	ch := make(chan UpdateEvent, 16)
	go func() {
		defer close(ch)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 16*1024), 256*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == "" {
				continue
			}
			var event UpdateEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				c.log.Debug("dropping malformed update event", logging.F("payload", payload))
				continue
			}
			select {
			case ch <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, cancel, nil
}
