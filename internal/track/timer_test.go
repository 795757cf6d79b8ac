package track

import (
	"context"
	"testing"
	"time"
)

func TestStartRequiresLogin(t *testing.T) {
	c := newTestContext(t, &fakeClient{})
	_, err := c.Start(context.Background(), "Test")
	if KindOf(err) != ErrorPrecondition {
		t.Fatalf("expected precondition failure, got %v", err)
	}
}

func TestStartCreatesRunningEntry(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	entry, err := c.Start(ctx, "Test")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if entry.GUID == "" {
		t.Fatalf("expected guid")
	}
	if entry.Description != "Test" {
		t.Fatalf("unexpected description: %q", entry.Description)
	}
	if entry.DurationSeconds >= 0 {
		t.Fatalf("expected negative sentinel, got %d", entry.DurationSeconds)
	}
	if entry.ProjectID != 0 {
		t.Fatalf("expected no project, got %d", entry.ProjectID)
	}
	if !entry.Dirty {
		t.Fatalf("expected dirty entry")
	}

	running, ok, err := c.RunningEntry(ctx)
	if err != nil {
		t.Fatalf("running: %v", err)
	}
	if !ok || running.GUID != entry.GUID {
		t.Fatalf("expected running entry %s, got %#v", entry.GUID, running)
	}
}

func TestStartAutoStopsPrevious(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	base := time.Date(2013, 9, 6, 12, 0, 0, 0, time.UTC)
	setClock(c, base)
	first, err := c.Start(ctx, "first")
	if err != nil {
		t.Fatalf("start first: %v", err)
	}
	setClock(c, base.Add(90*time.Second))
	second, err := c.Start(ctx, "second")
	if err != nil {
		t.Fatalf("start second: %v", err)
	}

	running, ok, err := c.RunningEntry(ctx)
	if err != nil {
		t.Fatalf("running: %v", err)
	}
	if !ok || running.GUID != second.GUID {
		t.Fatalf("expected second entry running")
	}

	entries, err := c.ListViewItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var stoppedSeen bool
	for _, item := range entries {
		if item.GUID == first.GUID {
			stoppedSeen = true
			if item.DurationSeconds != 90 {
				t.Fatalf("expected auto-stopped duration 90, got %d", item.DurationSeconds)
			}
		}
		if item.DurationSeconds < 0 {
			t.Fatalf("running entry leaked into list: %#v", item)
		}
	}
	if !stoppedSeen {
		t.Fatalf("auto-stopped entry missing from list")
	}
}

func TestStopComputesDuration(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	base := time.Date(2013, 9, 6, 12, 0, 0, 0, time.UTC)
	setClock(c, base)
	started, err := c.Start(ctx, "Test")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	setClock(c, base.Add(5410*time.Second))
	stopped, err := c.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.GUID != started.GUID {
		t.Fatalf("stopped wrong entry")
	}
	if stopped.DurationSeconds != 5410 {
		t.Fatalf("expected duration 5410, got %d", stopped.DurationSeconds)
	}
	if stopped.Stop == nil {
		t.Fatalf("expected stop time")
	}

	if _, ok, _ := c.RunningEntry(ctx); ok {
		t.Fatalf("expected nothing running after stop")
	}
}

func TestStopWithNothingRunning(t *testing.T) {
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	_, err := c.Stop(context.Background())
	if KindOf(err) != ErrorNotFound {
		t.Fatalf("expected not-found failure, got %v", err)
	}
}

func TestContinueCopiesSource(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	counts, err := c.PushableModels(ctx)
	if err != nil {
		t.Fatalf("pushable: %v", err)
	}
	if counts.TimeEntries != 0 {
		t.Fatalf("fixture entries should be clean, got %d dirty", counts.TimeEntries)
	}

	const sourceGUID = "07fba193-91c4-0ec8-2894-820df0548a8f"
	continued, err := c.Continue(ctx, sourceGUID)
	if err != nil {
		t.Fatalf("continue: %v", err)
	}
	if continued.GUID == sourceGUID {
		t.Fatalf("expected fresh guid")
	}
	if continued.Description != "new time entry" || continued.ProjectID != 2598305 {
		t.Fatalf("expected copied fields, got %#v", continued)
	}
	if continued.DurationSeconds >= 0 {
		t.Fatalf("expected negative sentinel")
	}

	counts, err = c.PushableModels(ctx)
	if err != nil {
		t.Fatalf("pushable: %v", err)
	}
	if counts.TimeEntries != 1 {
		t.Fatalf("expected dirty count 1, got %d", counts.TimeEntries)
	}

	source, ok, err := c.repo.Entries().Get(ctx, sourceGUID)
	if err != nil || !ok {
		t.Fatalf("source lookup: %v ok=%v", err, ok)
	}
	if source.Dirty || source.DurationSeconds != 6356 {
		t.Fatalf("source entry changed: %#v", source)
	}
}

func TestContinueAutoStopsRunning(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	if _, err := c.Start(ctx, "running"); err != nil {
		t.Fatalf("start: %v", err)
	}
	continued, err := c.Continue(ctx, "1e100f24-0e12-4b30-90a6-e7b76d1a81be")
	if err != nil {
		t.Fatalf("continue: %v", err)
	}

	running, ok, err := c.RunningEntry(ctx)
	if err != nil {
		t.Fatalf("running: %v", err)
	}
	if !ok || running.GUID != continued.GUID {
		t.Fatalf("expected continued entry to be the only running one")
	}

	entries, err := c.repo.Entries().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	runningCount := 0
	for _, entry := range entries {
		if entry.IsRunning() {
			runningCount++
		}
	}
	if runningCount != 1 {
		t.Fatalf("running invariant violated: %d running entries", runningCount)
	}
}

func TestContinueUnknownGUID(t *testing.T) {
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	_, err := c.Continue(context.Background(), "no-such-guid")
	if KindOf(err) != ErrorNotFound {
		t.Fatalf("expected not-found failure, got %v", err)
	}
}
