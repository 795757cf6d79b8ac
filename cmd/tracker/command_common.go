package main

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"text/tabwriter"

	"golang.org/x/term"

	"tracker/internal/config"
	"tracker/internal/logging"
	"tracker/internal/track"
	"tracker/internal/types"
)

const version = "dev"

// newTrackerContext builds the real session context: settings from the
// TOML file, the file-backed logger, and the bbolt store under the data
// directory.
func newTrackerContext() (trackerClient, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	logger := logging.Nop()
	if logPath, err := config.LogPath(); err == nil {
		if file, err := logging.OpenLogFile(logPath); err == nil {
			logger = logging.New(file, logging.ParseLevel(settings.LogLevel()))
		}
	}
	return track.NewContext(track.Options{
		DBPath:   dbPath,
		Settings: settings,
		Logger:   logger,
	})
}

func printEntries(output io.Writer, items []types.ViewItem) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "DURATION\tDESCRIPTION\tPROJECT\tGUID")
	for _, item := range items {
		description := item.Description
		if description == "" {
			description = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", item.Duration, description, item.Project, item.GUID)
	}
	_ = writer.Flush()
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", err
	}
	return line, nil
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	if track.KindOf(err) == track.ErrorPrecondition {
		fmt.Fprintln(stderr, "run `tracker login` first")
	}
	os.Exit(1)
}

func closeQuietly(client trackerClient) {
	_ = client.Close()
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
