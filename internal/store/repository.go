package store

import (
	"context"
	"errors"

	"tracker/internal/types"
)

const RepositoryBackendBbolt = "bbolt"

var ErrEntryNotFound = errors.New("time entry not found")

// Repository is the durable storage collaborator. It survives process
// restarts at a configured location and is queryable by dirty flag and by
// GUID. Reset clears every record, which is how logout and test isolation
// reinitialize local state.
type Repository interface {
	Users() UserStore
	Entries() TimeEntryStore
	Projects() ProjectStore
	Backend() string
	Reset(ctx context.Context) error
	Close() error
}

// UserStore holds the single locally cached account.
type UserStore interface {
	Current(ctx context.Context) (*types.User, bool, error)
	Save(ctx context.Context, user *types.User) error
	Clear(ctx context.Context) error
}

type TimeEntryStore interface {
	// List returns all entries ordered by start time descending, GUID
	// ascending on ties.
	List(ctx context.Context) ([]*types.TimeEntry, error)
	Get(ctx context.Context, guid string) (*types.TimeEntry, bool, error)
	// Running returns the entry with a negative duration sentinel, if any.
	Running(ctx context.Context) (*types.TimeEntry, bool, error)
	// Dirty returns every entry whose local changes have not been
	// acknowledged by a push, in List order.
	Dirty(ctx context.Context) ([]*types.TimeEntry, error)
	Put(ctx context.Context, entry *types.TimeEntry) error
	Delete(ctx context.Context, guid string) error
	// ReplaceAll swaps the whole entry set for a server snapshot.
	ReplaceAll(ctx context.Context, entries []*types.TimeEntry) error
}

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]*types.Project, error)
	GetProject(ctx context.Context, id int64) (*types.Project, bool, error)
	ReplaceProjects(ctx context.Context, projects []*types.Project) error
}

// OpenRepository opens the bbolt-backed repository at path, creating the
// file and schema on first use.
func OpenRepository(path string) (Repository, error) {
	return newBboltRepository(path)
}
