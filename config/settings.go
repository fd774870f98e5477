package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Settings is the on-disk configuration of the server.
type Settings struct {
	Server    ServerSettings   `json:"server"`
	Providers ProviderSettings `json:"providers"`
	Logging   LoggingSettings  `json:"logging"`
}

// ServerSettings controls the HTTP listener.
type ServerSettings struct {
	Addr string `json:"addr"`
}

// ProviderSettings configures the external catalogs.
type ProviderSettings struct {
	ITunes          EndpointSettings `json:"itunes"`
	TVMaze          EndpointSettings `json:"tvmaze"`
	TimeoutSeconds  int              `json:"timeoutSeconds"`
	CacheTTLSeconds int              `json:"cacheTtlSeconds"`
}

// EndpointSettings points a provider client at an API.
type EndpointSettings struct {
	BaseURL string `json:"baseUrl"`
}

// LoggingSettings controls the rotating log file. An empty File logs to stderr.
type LoggingSettings struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Addr: ":8080"},
		Providers: ProviderSettings{
			ITunes:          EndpointSettings{BaseURL: "https://itunes.apple.com"},
			TVMaze:          EndpointSettings{BaseURL: "https://api.tvmaze.com"},
			TimeoutSeconds:  10,
			CacheTTLSeconds: 60,
		},
		Logging: LoggingSettings{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

const (
	envAddr    = "WATCHBOARD_ADDR"
	envLogFile = "WATCHBOARD_LOG_FILE"
)

// Manager loads and saves Settings as JSON.
type Manager struct {
	fs     afero.Fs
	path   string
	getenv func(string) string
	mu     sync.RWMutex
}

// NewManager creates a manager for the settings file at path on the OS filesystem.
func NewManager(path string) *Manager {
	return NewManagerFs(afero.NewOsFs(), path)
}

// NewManagerFs creates a manager backed by fsys.
func NewManagerFs(fsys afero.Fs, path string) *Manager {
	return &Manager{fs: fsys, path: path, getenv: os.Getenv}
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the settings file. A missing file yields DefaultSettings; fields
// absent from the file keep their default values. Environment overrides are
// applied last.
func (m *Manager) Load() (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	settings := DefaultSettings()
	data, err := afero.ReadFile(m.fs, m.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", m.path, err)
		}
	}

	if v := strings.TrimSpace(m.getenv(envAddr)); v != "" {
		settings.Server.Addr = v
	}
	if v := strings.TrimSpace(m.getenv(envLogFile)); v != "" {
		settings.Logging.File = v
	}
	return settings, nil
}

// Save writes settings as indented JSON, creating the parent directory.
func (m *Manager) Save(settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dir := filepath.Dir(m.path); dir != "" && dir != "." {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := afero.WriteFile(m.fs, m.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
