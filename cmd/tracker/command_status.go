package main

import (
	"context"
	"flag"
	"fmt"
	"io"
)

type StatusCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewStatusCommand(stdout, stderr io.Writer, newClient clientFactory) *StatusCommand {
	return &StatusCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *StatusCommand) Run(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	defer closeQuietly(client)

	if user, ok := client.CurrentUser(); ok {
		fmt.Fprintf(c.stdout, "logged in as %s <%s>\n", user.Fullname, user.Email)
	} else {
		fmt.Fprintln(c.stdout, "not logged in")
	}

	running, ok, err := client.RunningViewItem(ctx)
	if err != nil {
		return err
	}
	if ok {
		description := running.Description
		if description == "" {
			description = "(no description)"
		}
		fmt.Fprintf(c.stdout, "tracking %s  %s\n", running.Duration, description)
	} else {
		fmt.Fprintln(c.stdout, "no time entry is tracking")
	}

	counts, err := client.PushableModels(ctx)
	if err != nil {
		return err
	}
	if counts.TimeEntries > 0 {
		fmt.Fprintf(c.stdout, "%d unsynced change(s)\n", counts.TimeEntries)
	}
	return nil
}
