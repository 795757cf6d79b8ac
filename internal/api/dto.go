package api

import "time"

// Relative paths of the endpoints the client talks to.
const (
	MePath           = "/api/v8/me?with_related_data=true"
	BatchUpdatesPath = "/api/v8/batch_updates"
	TimeEntriesPath  = "/api/v8/time_entries"
	UpdatesPath      = "/api/v8/updates"
)

// BatchUpdateItem is one pending change inside a batch push request. The
// whole batch is a JSON array of these.
type BatchUpdateItem struct {
	GUID        string `json:"guid"`
	Method      string `json:"method"`
	RelativeURL string `json:"relative_url"`
	Body        string `json:"body"`
}

// BatchUpdateResult is one per-item outcome in the batch response. Order is
// not guaranteed to match the request; GUID is the correlation key. Body is
// itself JSON and only decoded on status 200.
type BatchUpdateResult struct {
	StatusCode  int    `json:"status"`
	GUID        string `json:"guid"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// BatchResultData is the decoded Body of a successful batch item.
type BatchResultData struct {
	Data struct {
		ID           int64 `json:"id"`
		UIModifiedAt int64 `json:"ui_modified_at"`
	} `json:"data"`
}

// TimeEntryPayload is the serialized entity inside a batch item body,
// wrapped under a "time_entry" key the way the server expects writes.
type TimeEntryPayload struct {
	TimeEntry TimeEntryFields `json:"time_entry"`
}

type TimeEntryFields struct {
	GUID        string     `json:"guid"`
	Description string     `json:"description,omitempty"`
	ProjectID   int64      `json:"pid,omitempty"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop,omitempty"`
	Duration    int64      `json:"duration"`
	CreatedWith string     `json:"created_with"`
}

// MeResponse is the profile-with-related-data resource fetched on login
// and on pull.
type MeResponse struct {
	Since int64  `json:"since,omitempty"`
	Data  MeUser `json:"data"`
}

type MeUser struct {
	ID          int64         `json:"id"`
	APIToken    string        `json:"api_token"`
	Fullname    string        `json:"fullname"`
	Email       string        `json:"email"`
	TimeEntries []MeTimeEntry `json:"time_entries"`
	Projects    []MeProject   `json:"projects"`
}

type MeTimeEntry struct {
	ID           int64      `json:"id"`
	GUID         string     `json:"guid"`
	Description  string     `json:"description"`
	ProjectID    int64      `json:"pid"`
	Start        time.Time  `json:"start"`
	Stop         *time.Time `json:"stop"`
	Duration     int64      `json:"duration"`
	UIModifiedAt int64      `json:"ui_modified_at"`
}

type MeProject struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UpdateEvent is a change notification from the update stream. Model names
// the entity kind that changed on the server, when the server includes it.
type UpdateEvent struct {
	Model string `json:"model"`
}
