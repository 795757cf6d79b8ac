package main

import (
	"fmt"
	"os"
)

const usageText = `tracker is an offline-capable time tracking client.

Usage:
  tracker <command> [flags]

Commands:
  login     authenticate and fetch the account snapshot
  logout    clear credentials and local data
  start     start tracking a new time entry
  stop      stop the running time entry
  continue  start a copy of an earlier entry
  ls        list stopped time entries
  status    show the running entry and pending changes
  sync      push local changes and pull the server state
  config    print configuration (effective or defaults)
  ui        run the terminal status UI
  version   print the build version
  help      show help

Flags:
  -h, --help   show help

Examples:
  tracker login --email foo@bar.com
  tracker start writing the report
  tracker sync --watch
  tracker config --default
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
