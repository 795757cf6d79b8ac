package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

type LoginCommand struct {
	stdout       io.Writer
	stderr       io.Writer
	newClient    clientFactory
	readPassword func() (string, error)
}

func NewLoginCommand(stdout, stderr io.Writer, newClient clientFactory, readPassword func() (string, error)) *LoginCommand {
	return &LoginCommand{
		stdout:       stdout,
		stderr:       stderr,
		newClient:    newClient,
		readPassword: readPassword,
	}
}

func (c *LoginCommand) Run(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	email := fs.String("email", "", "account email")
	token := fs.String("token", "", "API token (skips the password login)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	defer closeQuietly(client)

	if *token != "" {
		if err := client.SetAPIToken(ctx, *token); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, "token saved")
		return nil
	}

	if *email == "" {
		return errors.New("email is required (or use --token)")
	}
	password, err := c.readPassword()
	if err != nil {
		return err
	}
	if err := client.Login(ctx, *email, password); err != nil {
		return err
	}
	user, _ := client.CurrentUser()
	if user != nil {
		fmt.Fprintf(c.stdout, "logged in as %s\n", user.Fullname)
		return nil
	}
	fmt.Fprintln(c.stdout, "logged in")
	return nil
}
