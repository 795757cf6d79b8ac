package track

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"tracker/internal/api"
	"tracker/internal/logging"
	"tracker/internal/types"
)

const createdWith = "tracker"

// Login authenticates with raw credentials, replaces the local user and
// time-entry set with the fetched snapshot, and persists the returned API
// token. On any failure no local state changes.
func (c *Context) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return preconditionError("email and password are required")
	}
	body, err := c.api.GetJSON(ctx, api.MePath, email, password)
	if err != nil {
		return requestError("login failed", err)
	}
	var me api.MeResponse
	if err := json.Unmarshal([]byte(body), &me); err != nil {
		return transportError("malformed profile response", err)
	}
	if me.Data.ID == 0 || strings.TrimSpace(me.Data.APIToken) == "" {
		return transportError("profile response missing user data", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.applyProfileLocked(ctx, &me, true); err != nil {
		return err
	}
	c.log.Info("logged in", logging.F("user", me.Data.ID), logging.F("entries", len(me.Data.TimeEntries)))
	return nil
}

// Logout clears the cached token and all local state. It does not contact
// the server.
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.Reset(ctx); err != nil {
		return err
	}
	c.user = nil
	c.token = ""
	c.log.Info("logged out")
	return nil
}

// Push sends every dirty entry to the server in one batch and reconciles
// the per-item outcomes. Items the server rejects stay dirty and are
// retried on the next push; only a transport-level failure makes Push
// itself fail, in which case nothing was modified.
func (c *Context) Push(ctx context.Context) error {
	batchID := logging.NewBatchID()
	items, snapshots, token, err := c.buildBatch(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	c.log.Debug("pushing batch", logging.F("batch", batchID), logging.F("items", len(items)))
	body, err := c.api.PostJSON(ctx, api.BatchUpdatesPath, string(payload), token, api.TokenAuthPassword)
	if err != nil {
		return requestError("push failed", err)
	}
	var results []api.BatchUpdateResult
	if err := json.Unmarshal([]byte(body), &results); err != nil {
		return transportError("malformed batch response", err)
	}
	return c.reconcile(ctx, batchID, results, snapshots)
}

// Sync pushes local changes, then pulls the profile snapshot and applies
// it. With full set, the pull replaces the whole local entry set;
// otherwise entries that are still dirty locally are preserved so pending
// edits survive.
func (c *Context) Sync(ctx context.Context, full bool) error {
	if err := c.Push(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return preconditionError("not logged in")
	}

	body, err := c.api.GetJSON(ctx, api.MePath, token, api.TokenAuthPassword)
	if err != nil {
		return requestError("pull failed", err)
	}
	var me api.MeResponse
	if err := json.Unmarshal([]byte(body), &me); err != nil {
		return transportError("malformed profile response", err)
	}
	if me.Data.ID == 0 {
		return transportError("profile response missing user data", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.applyProfileLocked(ctx, &me, full); err != nil {
		return err
	}
	c.log.Info("synced", logging.F("entries", len(me.Data.TimeEntries)), logging.F("full", full))
	return nil
}

// buildBatch snapshots the dirty set under the lock and returns the wire
// items plus each entry's local revision at build time. The snapshot lets
// reconciliation detect entries edited again while the request was in
// flight, even when the edit lands within the same wall-clock second.
func (c *Context) buildBatch(ctx context.Context) ([]api.BatchUpdateItem, map[string]int64, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return nil, nil, "", preconditionError("not logged in")
	}
	dirty, err := c.repo.Entries().Dirty(ctx)
	if err != nil {
		return nil, nil, "", err
	}

	items := make([]api.BatchUpdateItem, 0, len(dirty))
	snapshots := make(map[string]int64, len(dirty))
	for _, entry := range dirty {
		method := http.MethodPut
		relativeURL := fmt.Sprintf("%s/%d", api.TimeEntriesPath, entry.ID)
		if entry.ID == 0 {
			method = http.MethodPost
			relativeURL = api.TimeEntriesPath
		}
		fields, err := json.Marshal(api.TimeEntryPayload{TimeEntry: api.TimeEntryFields{
			GUID:        entry.GUID,
			Description: entry.Description,
			ProjectID:   entry.ProjectID,
			Start:       entry.Start,
			Stop:        entry.Stop,
			Duration:    entry.DurationSeconds,
			CreatedWith: createdWith,
		}})
		if err != nil {
			return nil, nil, "", err
		}
		items = append(items, api.BatchUpdateItem{
			GUID:        entry.GUID,
			Method:      method,
			RelativeURL: relativeURL,
			Body:        string(fields),
		})
		snapshots[entry.GUID] = entry.LocalRev
	}
	return items, snapshots, c.token, nil
}

// reconcile applies per-item outcomes back onto local entries, matching by
// GUID. Accepted items get the server id and timestamp and lose their
// dirty flag, unless the entry was modified locally after the batch
// snapshot was taken; rejected items stay dirty for the next push.
func (c *Context) reconcile(ctx context.Context, batchID string, results []api.BatchUpdateResult, snapshots map[string]int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	accepted, rejected := 0, 0
	for _, result := range results {
		snapshotRev, ok := snapshots[result.GUID]
		if !ok {
			c.log.Warn("batch result for unknown guid", logging.F("batch", batchID), logging.F("guid", result.GUID))
			continue
		}
		if result.StatusCode != http.StatusOK {
			rejected++
			c.log.Warn("batch item rejected",
				logging.F("batch", batchID),
				logging.F("guid", result.GUID),
				logging.F("status", result.StatusCode))
			continue
		}
		var data api.BatchResultData
		if err := json.Unmarshal([]byte(result.Body), &data); err != nil {
			rejected++
			c.log.Warn("malformed batch item body", logging.F("batch", batchID), logging.F("guid", result.GUID))
			continue
		}

		entry, ok, err := c.repo.Entries().Get(ctx, result.GUID)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		entry.ID = data.Data.ID
		if entry.LocalRev == snapshotRev {
			entry.UIModifiedAt = data.Data.UIModifiedAt
			clearDirty(entry)
		}
		// else: edited locally during the round trip; keep it dirty so
		// the new state goes out on the next push.
		if err := c.repo.Entries().Put(ctx, entry); err != nil {
			return err
		}
		accepted++
	}
	c.log.Info("push reconciled",
		logging.F("batch", batchID),
		logging.F("accepted", accepted),
		logging.F("rejected", rejected))
	return nil
}

// applyProfileLocked replaces local state with a fetched profile snapshot.
// With bootstrap set the whole entry set is swapped; otherwise locally
// dirty entries survive the pull. Callers must hold mu.
func (c *Context) applyProfileLocked(ctx context.Context, me *api.MeResponse, bootstrap bool) error {
	user := &types.User{
		ID:       me.Data.ID,
		Fullname: me.Data.Fullname,
		Email:    me.Data.Email,
		APIToken: me.Data.APIToken,
	}
	if user.APIToken == "" {
		user.APIToken = c.token
	}

	entries := make([]*types.TimeEntry, 0, len(me.Data.TimeEntries))
	for _, wire := range me.Data.TimeEntries {
		entries = append(entries, &types.TimeEntry{
			GUID:            wire.GUID,
			ID:              wire.ID,
			UserID:          user.ID,
			Description:     wire.Description,
			ProjectID:       wire.ProjectID,
			Start:           wire.Start,
			Stop:            wire.Stop,
			DurationSeconds: wire.Duration,
			UIModifiedAt:    wire.UIModifiedAt,
		})
	}
	if !bootstrap {
		localDirty, err := c.repo.Entries().Dirty(ctx)
		if err != nil {
			return err
		}
		if len(localDirty) > 0 {
			dirtyGUIDs := make(map[string]struct{}, len(localDirty))
			for _, entry := range localDirty {
				dirtyGUIDs[entry.GUID] = struct{}{}
			}
			merged := make([]*types.TimeEntry, 0, len(entries)+len(localDirty))
			for _, entry := range entries {
				if _, ok := dirtyGUIDs[entry.GUID]; ok {
					continue
				}
				merged = append(merged, entry)
			}
			merged = append(merged, localDirty...)
			entries = merged
		}
	}

	projects := make([]*types.Project, 0, len(me.Data.Projects))
	for _, wire := range me.Data.Projects {
		projects = append(projects, &types.Project{
			ID:    wire.ID,
			Name:  wire.Name,
			Color: wire.Color,
		})
	}

	if err := c.repo.Entries().ReplaceAll(ctx, entries); err != nil {
		return err
	}
	if err := c.repo.Projects().ReplaceProjects(ctx, projects); err != nil {
		return err
	}
	if err := c.repo.Users().Save(ctx, user); err != nil {
		return err
	}
	c.user = user
	c.token = user.APIToken
	return nil
}
