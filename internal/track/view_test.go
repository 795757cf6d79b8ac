package track

import (
	"context"
	"testing"
	"time"
)

func TestListViewItemsExcludesRunning(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	running, err := c.Start(ctx, "in progress")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	items, err := c.ListViewItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected the 3 stopped entries, got %d", len(items))
	}
	for _, item := range items {
		if item.GUID == running.GUID {
			t.Fatalf("running entry leaked into the list")
		}
	}
}

func TestListViewItemsOrderAndProjection(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	items, err := c.ListViewItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	// Most recently started first.
	wantGUIDs := []string{
		"2440f6c1-c6d8-4cf6-88c0-ba8cbfdf3b7a",
		"1e100f24-0e12-4b30-90a6-e7b76d1a81be",
		"07fba193-91c4-0ec8-2894-820df0548a8f",
	}
	for i, want := range wantGUIDs {
		if items[i].GUID != want {
			t.Fatalf("item %d: want guid %s, got %s", i, want, items[i].GUID)
		}
	}

	if items[1].Project != "Important" || items[1].Color != "14" {
		t.Fatalf("project not resolved: %#v", items[1])
	}
	if items[1].Duration != "01:00:00" {
		t.Fatalf("want duration 01:00:00, got %q", items[1].Duration)
	}
	if items[0].Project != "(no project)" || items[0].Color != "(no color)" {
		t.Fatalf("want placeholder labels, got %q/%q", items[0].Project, items[0].Color)
	}
	if items[0].Duration != "01:40 min" {
		t.Fatalf("want duration 01:40 min, got %q", items[0].Duration)
	}
	if items[2].Duration != "01:45:56" {
		t.Fatalf("want duration 01:45:56, got %q", items[2].Duration)
	}
}

func TestRunningViewItemLiveDuration(t *testing.T) {
	ctx := context.Background()
	f := &fakeClient{}
	c := newTestContext(t, f)
	loginTestUser(t, c, f)

	if _, _, err := c.RunningViewItem(ctx); err != nil {
		t.Fatalf("running view: %v", err)
	}
	if _, ok, _ := c.RunningViewItem(ctx); ok {
		t.Fatalf("nothing should be running yet")
	}

	base := time.Date(2013, 9, 6, 12, 0, 0, 0, time.UTC)
	setClock(c, base)
	if _, err := c.Start(ctx, "ticking"); err != nil {
		t.Fatalf("start: %v", err)
	}

	setClock(c, base.Add(65*time.Second))
	item, ok, err := c.RunningViewItem(ctx)
	if err != nil {
		t.Fatalf("running view: %v", err)
	}
	if !ok {
		t.Fatalf("expected a running item")
	}
	if item.Duration != "01:05 min" {
		t.Fatalf("want live duration 01:05 min, got %q", item.Duration)
	}
	if item.Description != "ticking" {
		t.Fatalf("unexpected description %q", item.Description)
	}

	setClock(c, base.Add(5400*time.Second))
	item, _, err = c.RunningViewItem(ctx)
	if err != nil {
		t.Fatalf("running view: %v", err)
	}
	if item.Duration != "01:30:00" {
		t.Fatalf("want live duration 01:30:00, got %q", item.Duration)
	}
}
