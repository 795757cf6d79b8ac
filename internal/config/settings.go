package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultServerURL = "https://www.toggl.com"
const defaultSyncIntervalSeconds = 300

type Settings struct {
	Server  ServerSettings  `toml:"server"`
	Proxy   ProxySettings   `toml:"proxy"`
	Logging LoggingSettings `toml:"logging"`
	Sync    SyncSettings    `toml:"sync"`
}

type ServerSettings struct {
	URL string `toml:"url"`
}

type ProxySettings struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type LoggingSettings struct {
	Level string `toml:"level"`
}

type SyncSettings struct {
	IntervalSeconds int `toml:"interval_seconds"`
}

func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			URL: defaultServerURL,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
		Sync: SyncSettings{
			IntervalSeconds: defaultSyncIntervalSeconds,
		},
	}
}

func LoadSettings() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return Settings{}, err
	}
	return loadSettingsFromPath(path)
}

func (s Settings) ServerBaseURL() string {
	addr := strings.TrimSpace(s.Server.URL)
	if addr == "" {
		return defaultServerURL
	}
	return strings.TrimRight(addr, "/")
}

// ProxyURL returns the configured HTTP proxy, or nil when no proxy is set.
func (s Settings) ProxyURL() (*url.URL, error) {
	host := strings.TrimSpace(s.Proxy.Host)
	if host == "" {
		return nil, nil
	}
	port := s.Proxy.Port
	if port <= 0 {
		return nil, errors.New("proxy port is required when proxy host is set")
	}
	proxy := &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	if username := strings.TrimSpace(s.Proxy.Username); username != "" {
		proxy.User = url.UserPassword(username, s.Proxy.Password)
	}
	return proxy, nil
}

func (s Settings) LogLevel() string {
	level := strings.TrimSpace(s.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (s Settings) SyncInterval() time.Duration {
	seconds := s.Sync.IntervalSeconds
	if seconds <= 0 {
		seconds = defaultSyncIntervalSeconds
	}
	return time.Duration(seconds) * time.Second
}

func loadSettingsFromPath(path string) (Settings, error) {
	settings := DefaultSettings()
	if err := readTOML(path, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
