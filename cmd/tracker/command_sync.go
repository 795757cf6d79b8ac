package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"
)

type SyncCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewSyncCommand(stdout, stderr io.Writer, newClient clientFactory) *SyncCommand {
	return &SyncCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *SyncCommand) Run(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	full := fs.Bool("full", false, "replace local entries with the server state")
	pushOnly := fs.Bool("push-only", false, "push local changes without pulling")
	watch := fs.Bool("watch", false, "keep syncing on server notifications")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	defer closeQuietly(client)

	if *pushOnly {
		if err := client.Push(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, "pushed")
		return nil
	}

	if err := client.Sync(ctx, *full); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "synced")
	if !*watch {
		return nil
	}
	return c.watch(ctx, client)
}

// watch keeps the local state fresh: it re-syncs whenever the server
// announces a change, and on a timer as a fallback when the stream is
// quiet.
func (c *SyncCommand) watch(ctx context.Context, client trackerClient) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	events, cancel, err := client.ListenToUpdates(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	interval := client.Settings().SyncInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return fmt.Errorf("update stream closed")
			}
			if err := client.Sync(ctx, false); err != nil {
				fmt.Fprintf(c.stderr, "sync error: %v\n", err)
				continue
			}
			fmt.Fprintf(c.stdout, "synced at %s\n", time.Now().Format(time.TimeOnly))
		case <-ticker.C:
			if err := client.Sync(ctx, false); err != nil {
				fmt.Fprintf(c.stderr, "sync error: %v\n", err)
				continue
			}
			fmt.Fprintf(c.stdout, "synced at %s\n", time.Now().Format(time.TimeOnly))
		}
	}
}
