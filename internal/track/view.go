package track

import (
	"context"

	"tracker/internal/types"
)

const (
	noProjectLabel = "(no project)"
	noColorLabel   = "(no color)"
)

// ListViewItems projects every stored entry except the running one into
// display items. Order: most recently started first, GUID ascending on
// ties, so the listing is total and stable across runs.
func (c *Context) ListViewItems(ctx context.Context) ([]types.ViewItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.repo.Entries().List(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := c.projectIndexLocked(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]types.ViewItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsRunning() {
			continue
		}
		items = append(items, c.projectEntryLocked(entry, projects))
	}
	return items, nil
}

// RunningViewItem projects the running entry with its duration computed
// live from the wall clock. The flag is false when nothing is running.
func (c *Context) RunningViewItem(ctx context.Context) (types.ViewItem, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	running, ok, err := c.repo.Entries().Running(ctx)
	if err != nil || !ok {
		return types.ViewItem{}, false, err
	}
	projects, err := c.projectIndexLocked(ctx)
	if err != nil {
		return types.ViewItem{}, false, err
	}
	item := c.projectEntryLocked(running, projects)
	item.Duration = FormatDuration(c.now().Unix() - running.Start.Unix())
	return item, true, nil
}

func (c *Context) projectIndexLocked(ctx context.Context) (map[int64]*types.Project, error) {
	projects, err := c.repo.Projects().ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[int64]*types.Project, len(projects))
	for _, project := range projects {
		index[project.ID] = project
	}
	return index, nil
}

func (c *Context) projectEntryLocked(entry *types.TimeEntry, projects map[int64]*types.Project) types.ViewItem {
	item := types.ViewItem{
		GUID:            entry.GUID,
		Description:     entry.Description,
		Project:         noProjectLabel,
		Color:           noColorLabel,
		Duration:        FormatDuration(entry.DurationSeconds),
		DurationSeconds: entry.DurationSeconds,
		Start:           entry.Start,
	}
	if project, ok := projects[entry.ProjectID]; ok && entry.ProjectID != 0 {
		item.Project = project.Name
		if project.Color != "" {
			item.Color = project.Color
		}
	}
	return item
}
