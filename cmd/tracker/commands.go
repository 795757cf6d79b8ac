package main

import (
	"context"
	"io"
	"os"

	"tracker/internal/api"
	"tracker/internal/config"
	"tracker/internal/types"
)

type commandRunner interface {
	Run(args []string) error
}

// trackerClient is the slice of the session context the commands consume.
// Satisfied by *track.Context and by test doubles.
type trackerClient interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	SetAPIToken(ctx context.Context, token string) error
	Start(ctx context.Context, description string) (*types.TimeEntry, error)
	Stop(ctx context.Context) (*types.TimeEntry, error)
	Continue(ctx context.Context, guid string) (*types.TimeEntry, error)
	ListViewItems(ctx context.Context) ([]types.ViewItem, error)
	RunningViewItem(ctx context.Context) (types.ViewItem, bool, error)
	PushableModels(ctx context.Context) (types.SyncCounts, error)
	Push(ctx context.Context) error
	Sync(ctx context.Context, full bool) error
	ListenToUpdates(ctx context.Context) (<-chan api.UpdateEvent, func(), error)
	CurrentUser() (*types.User, bool)
	Settings() config.Settings
	Close() error
}

type clientFactory func() (trackerClient, error)

type commandWiring struct {
	stdout       io.Writer
	stderr       io.Writer
	newClient    clientFactory
	readPassword func() (string, error)
	version      string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:       stdout,
		stderr:       stderr,
		newClient:    newTrackerContext,
		readPassword: promptPassword,
		version:      buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"login":    NewLoginCommand(wiring.stdout, wiring.stderr, wiring.newClient, wiring.readPassword),
		"logout":   NewLogoutCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"start":    NewStartCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"stop":     NewStopCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"continue": NewContinueCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"ls":       NewLSCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"status":   NewStatusCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"sync":     NewSyncCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"config":   NewConfigCommand(wiring.stdout, wiring.stderr),
		"ui":       NewUICommand(wiring.stderr, wiring.newClient),
		"version":  NewVersionCommand(wiring.stdout, wiring.version),
	}
}
