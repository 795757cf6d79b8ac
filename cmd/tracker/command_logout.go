package main

import (
	"context"
	"flag"
	"fmt"
	"io"
)

type LogoutCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewLogoutCommand(stdout, stderr io.Writer, newClient clientFactory) *LogoutCommand {
	return &LogoutCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *LogoutCommand) Run(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	defer closeQuietly(client)

	if err := client.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "logged out")
	return nil
}
