package track

import (
	"context"

	"tracker/internal/api"
)

// ListenToUpdates opens the server's change-notification stream. Each
// event is a prompt to re-run Sync; no entity data rides on the channel.
func (c *Context) ListenToUpdates(ctx context.Context) (<-chan api.UpdateEvent, func(), error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return nil, nil, preconditionError("not logged in")
	}
	events, cancel, err := c.api.ListenToUpdates(ctx, token)
	if err != nil {
		return nil, nil, requestError("update stream failed", err)
	}
	return events, cancel, nil
}
