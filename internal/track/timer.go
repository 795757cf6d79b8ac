package track

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"tracker/internal/logging"
	"tracker/internal/types"
)

// Start begins tracking a new entry. If another entry is running it is
// stopped first, so at most one entry per user is ever running. The new
// entry carries a fresh GUID, the negative duration sentinel, and is
// marked dirty for the next push.
func (c *Context) Start(ctx context.Context, description string) (*types.TimeEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	if err := c.stopRunningLocked(ctx); err != nil {
		return nil, err
	}

	now := c.now()
	entry := &types.TimeEntry{
		GUID:            uuid.NewString(),
		UserID:          user.ID,
		Description:     description,
		Start:           now,
		DurationSeconds: -now.Unix(),
	}
	markDirty(entry, now)
	if err := c.repo.Entries().Put(ctx, entry); err != nil {
		return nil, err
	}
	c.log.Info("entry started", logging.F("guid", entry.GUID))
	return types.CloneTimeEntry(entry), nil
}

// Stop halts the running entry, replacing the sentinel with the real
// elapsed duration. Fails with a not-found condition when nothing is
// running.
func (c *Context) Stop(ctx context.Context) (*types.TimeEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.requireUser(); err != nil {
		return nil, err
	}
	running, ok, err := c.repo.Entries().Running(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundError("no time entry is tracking", nil)
	}
	if err := c.stopEntryLocked(ctx, running); err != nil {
		return nil, err
	}
	c.log.Info("entry stopped", logging.F("guid", running.GUID), logging.F("duration", running.DurationSeconds))
	return types.CloneTimeEntry(running), nil
}

// Continue starts a new entry copying the description and project of the
// entry identified by guid. The source entry is left untouched; a running
// entry, if any, is stopped first.
func (c *Context) Continue(ctx context.Context, guid string) (*types.TimeEntry, error) {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return nil, notFoundError("time entry guid is required", nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	source, ok, err := c.repo.Entries().Get(ctx, guid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundError("time entry not found: "+guid, nil)
	}
	if err := c.stopRunningLocked(ctx); err != nil {
		return nil, err
	}

	now := c.now()
	entry := &types.TimeEntry{
		GUID:            uuid.NewString(),
		UserID:          user.ID,
		Description:     source.Description,
		ProjectID:       source.ProjectID,
		Start:           now,
		DurationSeconds: -now.Unix(),
	}
	markDirty(entry, now)
	if err := c.repo.Entries().Put(ctx, entry); err != nil {
		return nil, err
	}
	c.log.Info("entry continued", logging.F("source", source.GUID), logging.F("guid", entry.GUID))
	return types.CloneTimeEntry(entry), nil
}

// RunningEntry returns the running entry and whether one exists.
func (c *Context) RunningEntry(ctx context.Context) (*types.TimeEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repo.Entries().Running(ctx)
}

// stopRunningLocked stops whatever entry is running, if any. Callers must
// hold mu.
func (c *Context) stopRunningLocked(ctx context.Context) error {
	running, ok, err := c.repo.Entries().Running(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := c.stopEntryLocked(ctx, running); err != nil {
		return err
	}
	c.log.Debug("auto-stopped running entry", logging.F("guid", running.GUID))
	return nil
}

func (c *Context) stopEntryLocked(ctx context.Context, entry *types.TimeEntry) error {
	now := c.now()
	stop := now
	entry.Stop = &stop
	elapsed := stop.Unix() - entry.Start.Unix()
	if elapsed < 0 {
		elapsed = 0
	}
	entry.DurationSeconds = elapsed
	markDirty(entry, now)
	return c.repo.Entries().Put(ctx, entry)
}
