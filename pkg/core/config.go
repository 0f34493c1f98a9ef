// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFeedURL is the service index of the public NuGet feed
	DefaultFeedURL = "https://api.nuget.org/v3/index.json"

	// DefaultCommandPrefix marks executables that are CLI extensions
	DefaultCommandPrefix = "ext-"

	// DefaultTimeout bounds every network call made by the pipeline
	DefaultTimeout = 2 * time.Minute
)

// Config holds extpm configuration
type Config struct {
	FeedURL           string        `yaml:"feed_url"`
	Root              string        `yaml:"root"`
	CommandPrefix     string        `yaml:"command_prefix"`
	IncludePrerelease bool          `yaml:"include_prerelease"`
	Timeout           time.Duration `yaml:"timeout"`
	Debug             bool          `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		FeedURL:       DefaultFeedURL,
		Root:          getDefaultRoot(),
		CommandPrefix: DefaultCommandPrefix,
		Timeout:       DefaultTimeout,
	}
}

// ConfigDir returns the directory holding config.yaml and aliases.toml
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "extpm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "extpm")
	}
	return filepath.Join(home, ".config", "extpm")
}

// LoadConfig loads configuration from file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(ConfigDir(), "config.yaml")
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(ConfigDir(), "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func getDefaultRoot() string {
	if path := os.Getenv("EXTPM_ROOT"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "extpm")
	}

	return filepath.Join(home, ".extpm")
}
