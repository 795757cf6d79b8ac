package types

import "time"

// TimeEntry is the central mutable record of the client.
//
// GUID is generated on the client and never reused; it is the correlation
// key for batch sync because the server ID does not exist until the server
// has accepted a create. DurationSeconds is signed: while the entry is
// running it holds the negated start time (always negative, never a valid
// elapsed duration) and turns into the nonnegative elapsed seconds on stop.
// The sign is the on-disk indicator of running state.
type TimeEntry struct {
	GUID            string     `json:"guid"`
	ID              int64      `json:"id,omitempty"`
	UserID          int64      `json:"uid,omitempty"`
	Description     string     `json:"description,omitempty"`
	ProjectID       int64      `json:"pid,omitempty"`
	Start           time.Time  `json:"start"`
	Stop            *time.Time `json:"stop,omitempty"`
	DurationSeconds int64      `json:"duration"`
	Dirty           bool       `json:"dirty,omitempty"`
	UIModifiedAt    int64      `json:"ui_modified_at,omitempty"`
	// LocalRev counts local mutations. It is never sent to the server;
	// sync uses it to tell whether an entry changed while a push was in
	// flight, which UIModifiedAt cannot at its one-second resolution.
	LocalRev int64 `json:"local_rev,omitempty"`
}

// IsRunning reports whether the entry has been started but not stopped.
func (e *TimeEntry) IsRunning() bool {
	return e != nil && e.DurationSeconds < 0
}

func CloneTimeEntry(entry *TimeEntry) *TimeEntry {
	if entry == nil {
		return nil
	}
	out := *entry
	if entry.Stop != nil {
		stop := *entry.Stop
		out.Stop = &stop
	}
	return &out
}

func CloneTimeEntries(entries []*TimeEntry) []*TimeEntry {
	if entries == nil {
		return nil
	}
	out := make([]*TimeEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, CloneTimeEntry(entry))
	}
	return out
}
