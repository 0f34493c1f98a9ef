// extpm.go
package extpm

import (
	"github.com/charmbracelet/log"

	"github.com/arc-language/extpm/pkg/core"
	"github.com/arc-language/extpm/pkg/install"
	"github.com/arc-language/extpm/pkg/registry"
)

// Re-export core types for convenience
type (
	Config         = core.Config
	Package        = core.Package
	InstallOptions = core.InstallOptions
	PackageManager = core.PackageManager
	Manager        = install.Manager
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// LoadConfig reads config.yaml from path, or from the default config
// directory when path is empty
func LoadConfig(path string) (*Config, error) {
	return core.LoadConfig(path)
}

// NewManager creates a Manager for config. Aliases are read from
// aliases.toml in the default config directory when it exists.
func NewManager(config *Config, logger *log.Logger) (*Manager, error) {
	aliases, err := registry.Load(registry.DefaultPath(core.ConfigDir()))
	if err != nil {
		return nil, err
	}
	return install.NewManager(config, aliases, logger), nil
}
