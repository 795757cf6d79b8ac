package track

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"tracker/internal/api"
	"tracker/internal/config"
	"tracker/internal/logging"
	"tracker/internal/store"
	"tracker/internal/types"
)

// Options configures a Context. DBPath is required; a nil Client gets the
// real HTTP transport built from Settings.
type Options struct {
	DBPath   string
	Settings config.Settings
	Logger   logging.Logger
	Client   api.Client
}

// Context is the process-wide state of one running client: storage handle,
// transport handle, the authenticated user and its token. All mutations of
// the entry set, the dirty flags, or the user/token slot serialize on mu.
// Network round trips never happen under mu; callers snapshot inputs,
// release the lock, and re-acquire it to apply outputs.
type Context struct {
	mu   sync.Mutex
	cfg  config.Settings
	repo store.Repository
	api  api.Client
	log  logging.Logger

	user  *types.User
	token string

	now func() time.Time
}

// NewContext opens local storage, restores any persisted credentials, and
// returns a ready Context. Callers own it and must Close it on shutdown.
func NewContext(opts Options) (*Context, error) {
	if strings.TrimSpace(opts.DBPath) == "" {
		return nil, errors.New("db path is required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	client := opts.Client
	if client == nil {
		httpClient, err := api.NewHTTPClient(opts.Settings, log)
		if err != nil {
			return nil, err
		}
		client = httpClient
	}
	repo, err := store.OpenRepository(opts.DBPath)
	if err != nil {
		return nil, err
	}

	c := &Context{
		cfg:  opts.Settings,
		repo: repo,
		api:  client,
		log:  log.With(logging.F("component", "track")),
		now:  time.Now,
	}
	user, ok, err := repo.Users().Current(context.Background())
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	if ok {
		c.user = user
		c.token = user.APIToken
	}
	return c, nil
}

func (c *Context) Close() error {
	if c == nil || c.repo == nil {
		return nil
	}
	return c.repo.Close()
}

// Settings returns the configuration the Context was built with.
func (c *Context) Settings() config.Settings {
	return c.cfg
}

// CurrentUser returns the authenticated user, if any.
func (c *Context) CurrentUser() (*types.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil, false
	}
	return types.CloneUser(c.user), true
}

// APIToken returns the cached credential, empty after logout.
func (c *Context) APIToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetAPIToken stores a credential directly, bypassing the password login.
// Subsequent pushes and pulls authenticate with it.
func (c *Context) SetAPIToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return preconditionError("api token is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	user := c.user
	if user == nil {
		user = &types.User{}
	}
	user.APIToken = token
	if err := c.repo.Users().Save(ctx, user); err != nil {
		return err
	}
	c.user = user
	c.token = token
	return nil
}

// requireUser returns the authenticated user or a precondition failure.
// Callers must hold mu.
func (c *Context) requireUser() (*types.User, error) {
	if c.user == nil {
		return nil, preconditionError("not logged in")
	}
	return c.user, nil
}
