package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

type ContinueCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewContinueCommand(stdout, stderr io.Writer, newClient clientFactory) *ContinueCommand {
	return &ContinueCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *ContinueCommand) Run(args []string) error {
	fs := flag.NewFlagSet("continue", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: tracker continue <guid>")
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	defer closeQuietly(client)

	entry, err := client.Continue(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, entry.GUID)
	return nil
}
