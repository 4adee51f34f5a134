package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for ponto, stored in ~/.ponto/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	GoalMinutes int           `json:"goal_minutes"`
	Storage     StorageConfig `json:"storage"`
	Remote      RemoteConfig  `json:"remote"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is "file" (one JSON file per record) or "sqlite".
	Backend string `json:"backend"`
}

// RemoteConfig holds the optional JSON-bin mirror settings.
type RemoteConfig struct {
	// BaseURL is the bin service endpoint. Empty disables replication.
	BaseURL string `json:"base_url"`
	// AccessToken is sent as a bearer token when non-empty.
	AccessToken string `json:"access_token"`
	// AutoSync pushes a snapshot after every mutating command, best-effort.
	AutoSync bool `json:"auto_sync"`
}

const (
	// DefaultGoalMinutes is the 3-hour daily target.
	DefaultGoalMinutes = 180
	// DefaultBackend stores records as per-day JSON files.
	DefaultBackend = "file"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		GoalMinutes: DefaultGoalMinutes,
		Storage:     StorageConfig{Backend: DefaultBackend},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// ponto configuration – ~/.ponto/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Edit this file to customise ponto behaviour.
{
  // Daily goal in minutes. A day meeting this total counts towards the streak.
  "goal_minutes": 180,

  // ── Storage ──────────────────────────────────────────────────────────────
  "storage": {
    // Persistence backend:
    // • "file"   – one JSON file per record under ~/.ponto/data (default)
    // • "sqlite" – a single SQLite database at ~/.ponto/ponto.db
    "backend": "file"
  },

  // ── Remote mirror (JSON-bin service) ─────────────────────────────────────
  "remote": {
    // Bin service base URL, e.g. "https://api.jsonbin.io/v3/b".
    // Leave empty to disable replication entirely.
    "base_url": "",

    // Optional bearer token sent with every bin request.
    "access_token": "",

    // When true, every mutating command also pushes a snapshot.
    // Remote failures never block or fail the local operation.
    "auto_sync": false
  }
}
`

// BaseDir returns the root data directory (~/.ponto).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ponto"), nil
}

// configFilePath returns the path to ~/.ponto/config.json.
func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ponto/config.json, creating it with annotated defaults on
// first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.GoalMinutes <= 0 {
		cfg.GoalMinutes = DefaultGoalMinutes
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultBackend
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
