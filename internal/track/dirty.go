package track

import (
	"context"
	"time"

	"tracker/internal/types"
)

// markDirty flags a local mutation pending push, advances the
// modification timestamp, and bumps the local revision counter.
func markDirty(entry *types.TimeEntry, now time.Time) {
	entry.Dirty = true
	entry.UIModifiedAt = now.Unix()
	entry.LocalRev++
}

// clearDirty acknowledges that the server has accepted the entry's current
// state. Idempotent.
func clearDirty(entry *types.TimeEntry) {
	entry.Dirty = false
}

// PushableModels reports how many records of each kind carry unsynced
// changes. A zero snapshot means a push would be a no-op.
func (c *Context) PushableModels(ctx context.Context) (types.SyncCounts, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dirty, err := c.repo.Entries().Dirty(ctx)
	if err != nil {
		return types.SyncCounts{}, err
	}
	return types.SyncCounts{TimeEntries: len(dirty)}, nil
}
