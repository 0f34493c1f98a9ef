// pkg/entrypoint/resolver.go
package entrypoint

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Resolver picks an entry-point strategy for an installation and runs it
type Resolver struct {
	logger *log.Logger
}

// NewResolver creates a Resolver. A nil logger discards output.
func NewResolver(logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{logger: logger}
}

// Select returns MetadataDriven when the installation carries a command
// descriptor and HeuristicScan otherwise
func Select(installDir string) Strategy {
	if _, err := os.Stat(filepath.Join(installDir, filepath.FromSlash(MetadataPath))); err == nil {
		return MetadataDriven{}
	}
	return HeuristicScan{}
}

// Resolve determines the absolute path of the entry point of installDir
func (r *Resolver) Resolve(installDir string) (*Resolution, error) {
	strategy := Select(installDir)
	r.logger.Debugf("Resolving entry point of %s (strategy: %s)", installDir, strategy.Name())

	path, err := strategy.Resolve(installDir)
	if err != nil {
		return nil, err
	}

	r.logger.Debugf("Entry point: %s", path)
	return &Resolution{Path: path, Strategy: strategy.Name()}, nil
}
