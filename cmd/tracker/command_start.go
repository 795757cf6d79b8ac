package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

type StartCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewStartCommand(stdout, stderr io.Writer, newClient clientFactory) *StartCommand {
	return &StartCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *StartCommand) Run(args []string) error {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	description := strings.Join(fs.Args(), " ")

	client, err := c.newClient()
	if err != nil {
		return err
	}
	defer closeQuietly(client)

	entry, err := client.Start(context.Background(), description)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, entry.GUID)
	return nil
}
