package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tracker/internal/track"
)

type StopCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewStopCommand(stdout, stderr io.Writer, newClient clientFactory) *StopCommand {
	return &StopCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *StopCommand) Run(args []string) error {
	fs := flag.NewFlagSet("stop", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	defer closeQuietly(client)

	entry, err := client.Stop(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s %s\n", entry.GUID, track.FormatDuration(entry.DurationSeconds))
	return nil
}
