// Package config loads application settings from a YAML file under the
// user's data directory, falling back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is missing or fields are unset.
const (
	DefaultListenAddr      = "127.0.0.1:8077"
	DefaultCameraID        = 0
	DefaultMotionThreshold = 1.0 // percent of pixels that must change
	DefaultDirName         = ".baithak"
)

// Config holds all user-tunable settings.
type Config struct {
	// CameraID selects the capture device passed to OpenCV.
	CameraID int `yaml:"camera_id"`

	// ListenAddr is the address the dashboard HTTP server binds to.
	ListenAddr string `yaml:"listen_addr"`

	// StaticDir overrides the location of the dashboard assets. Empty
	// means serve the built-in assets next to the data directory.
	StaticDir string `yaml:"static_dir"`

	// MotionThreshold is the minimum changed-pixel count that counts as
	// movement when deciding whether to run pose inference.
	MotionThreshold float64 `yaml:"motion_threshold"`

	// VoiceEnabled turns spoken coaching feedback on or off.
	VoiceEnabled bool `yaml:"voice_enabled"`

	// SyncURL is the optional cloud backup endpoint. Empty disables sync.
	SyncURL string `yaml:"sync_url"`

	// SyncAPIKey authenticates cloud backup requests.
	SyncAPIKey string `yaml:"sync_api_key"`

	// DataDir holds the database, history CSV, and detector scripts.
	DataDir string `yaml:"data_dir"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		CameraID:        DefaultCameraID,
		ListenAddr:      DefaultListenAddr,
		MotionThreshold: DefaultMotionThreshold,
		VoiceEnabled:    true,
		DataDir:         defaultDataDir(),
	}
}

// Load reads the config file at path. A missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadDefault reads the config from its standard location,
// ~/.baithak/config.yaml.
func LoadDefault() (*Config, error) {
	return Load(filepath.Join(defaultDataDir(), "config.yaml"))
}

// Save writes the config to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// DatabasePath returns the sqlite file location under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "baithak.db")
}

// HistoryPath returns the CSV history file location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "workout_history.csv")
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.MotionThreshold <= 0 {
		c.MotionThreshold = DefaultMotionThreshold
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}
