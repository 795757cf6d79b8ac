package types

import "time"

// ViewItem is a display projection of a time entry. It is derived on
// demand and never persisted.
type ViewItem struct {
	GUID            string    `json:"guid"`
	Description     string    `json:"description"`
	Project         string    `json:"project"`
	Color           string    `json:"color"`
	Duration        string    `json:"duration"`
	DurationSeconds int64     `json:"duration_in_seconds"`
	Start           time.Time `json:"start"`
}

// SyncCounts is a snapshot of how many local records carry unsynced
// changes, one count per entity kind.
type SyncCounts struct {
	TimeEntries int `json:"time_entries"`
}
