package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"tracker/internal/types"
)

var (
	bucketUsers    = []byte("users")
	bucketEntries  = []byte("time_entries")
	bucketProjects = []byte("projects")
	keyCurrentUser = []byte("current")
)

type bboltRepository struct {
	db       *bolt.DB
	users    UserStore
	entries  TimeEntryStore
	projects ProjectStore
}

func newBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{
		db:       db,
		users:    &bboltUserStore{db: db},
		entries:  &bboltTimeEntryStore{db: db},
		projects: &bboltProjectStore{db: db},
	}, nil
}

func (r *bboltRepository) Users() UserStore {
	return r.users
}

func (r *bboltRepository) Entries() TimeEntryStore {
	return r.entries
}

func (r *bboltRepository) Projects() ProjectStore {
	return r.projects
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Reset(ctx context.Context) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketUsers, bucketEntries, bucketProjects} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketUsers); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketEntries); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketProjects); err != nil {
			return err
		}
		return nil
	})
}

type bboltUserStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltUserStore) Current(ctx context.Context) (*types.User, bool, error) {
	var (
		out *types.User
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		if b == nil {
			return nil
		}
		raw := b.Get(keyCurrentUser)
		if len(raw) == 0 {
			return nil
		}
		var user types.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return err
		}
		out = types.CloneUser(&user)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (s *bboltUserStore) Save(ctx context.Context, user *types.User) error {
	if user == nil {
		return errors.New("user is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		if b == nil {
			return errors.New("users bucket missing")
		}
		return b.Put(keyCurrentUser, raw)
	})
}

func (s *bboltUserStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		if b == nil {
			return nil
		}
		return b.Delete(keyCurrentUser)
	})
}

type bboltTimeEntryStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltTimeEntryStore) List(ctx context.Context) ([]*types.TimeEntry, error) {
	out := make([]*types.TimeEntry, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var entry types.TimeEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			out = append(out, types.CloneTimeEntry(&entry))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortEntries(out)
	return out, nil
}

func (s *bboltTimeEntryStore) Get(ctx context.Context, guid string) (*types.TimeEntry, bool, error) {
	var (
		out *types.TimeEntry
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(guid))
		if len(raw) == 0 {
			return nil
		}
		var entry types.TimeEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return err
		}
		out = types.CloneTimeEntry(&entry)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (s *bboltTimeEntryStore) Running(ctx context.Context) (*types.TimeEntry, bool, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, entry := range entries {
		if entry.IsRunning() {
			return entry, true, nil
		}
	}
	return nil, false, nil
}

func (s *bboltTimeEntryStore) Dirty(ctx context.Context) ([]*types.TimeEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*types.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Dirty {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *bboltTimeEntryStore) Put(ctx context.Context, entry *types.TimeEntry) error {
	if entry == nil {
		return errors.New("entry is required")
	}
	if strings.TrimSpace(entry.GUID) == "" {
		return errors.New("entry guid is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if b == nil {
			return errors.New("time entries bucket missing")
		}
		return b.Put([]byte(entry.GUID), raw)
	})
}

func (s *bboltTimeEntryStore) Delete(ctx context.Context, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if b == nil {
			return errors.New("time entries bucket missing")
		}
		if b.Get([]byte(guid)) == nil {
			return ErrEntryNotFound
		}
		return b.Delete([]byte(guid))
	})
}

func (s *bboltTimeEntryStore) ReplaceAll(ctx context.Context, entries []*types.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketEntries); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucketIfNotExists(bucketEntries)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry == nil || strings.TrimSpace(entry.GUID) == "" {
				continue
			}
			raw, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(entry.GUID), raw); err != nil {
				return err
			}
		}
		return nil
	})
}

type bboltProjectStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltProjectStore) ListProjects(ctx context.Context) ([]*types.Project, error) {
	out := make([]*types.Project, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProjects)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var project types.Project
			if err := json.Unmarshal(v, &project); err != nil {
				return err
			}
			out = append(out, types.CloneProject(&project))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *bboltProjectStore) GetProject(ctx context.Context, id int64) (*types.Project, bool, error) {
	var (
		out *types.Project
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProjects)
		if b == nil {
			return nil
		}
		raw := b.Get(projectKey(id))
		if len(raw) == 0 {
			return nil
		}
		var project types.Project
		if err := json.Unmarshal(raw, &project); err != nil {
			return err
		}
		out = types.CloneProject(&project)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (s *bboltProjectStore) ReplaceProjects(ctx context.Context, projects []*types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketProjects); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucketIfNotExists(bucketProjects)
		if err != nil {
			return err
		}
		for _, project := range projects {
			if project == nil || project.ID == 0 {
				continue
			}
			raw, err := json.Marshal(project)
			if err != nil {
				return err
			}
			if err := b.Put(projectKey(project.ID), raw); err != nil {
				return err
			}
		}
		return nil
	})
}

func projectKey(id int64) []byte {
	return []byte(strconv.FormatInt(id, 10))
}

func sortEntries(entries []*types.TimeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Start.Equal(entries[j].Start) {
			return entries[i].Start.After(entries[j].Start)
		}
		return entries[i].GUID < entries[j].GUID
	})
}
