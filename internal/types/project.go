package types

// Project is read-only reference data pulled with the user's profile.
// The client never mutates projects; they exist so view items can resolve
// a project name and color for display.
type Project struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func CloneProject(project *Project) *Project {
	if project == nil {
		return nil
	}
	out := *project
	return &out
}
