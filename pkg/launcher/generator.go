// pkg/launcher/generator.go
package launcher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/arc-language/extpm/pkg/core"
	"github.com/arc-language/extpm/pkg/layout"
)

// Generator writes launcher stubs for resolved entry points
type Generator struct {
	layout layout.Provider
	prefix string
	goos   string
	logger *log.Logger
}

// NewGenerator creates a Generator that only accepts entry points whose file
// name starts with prefix. A nil logger discards output.
func NewGenerator(provider layout.Provider, prefix string, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if prefix == "" {
		prefix = core.DefaultCommandPrefix
	}
	return &Generator{
		layout: provider,
		prefix: prefix,
		goos:   runtime.GOOS,
		logger: logger,
	}
}

// ForOS returns a copy of g that renders launchers for goos
func (g *Generator) ForOS(goos string) *Generator {
	cp := *g
	cp.goos = goos
	return &cp
}

// Validate checks the entry point's file name against the extension prefix
func (g *Generator) Validate(entryPoint string) error {
	name := filepath.Base(entryPoint)
	if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(g.prefix)) {
		return fmt.Errorf("%w: %s does not start with %q", core.ErrNotACliExtension, name, g.prefix)
	}
	return nil
}

// Generate validates entryPoint and writes its launcher, returning the
// launcher's path. Nothing is written when validation fails.
func (g *Generator) Generate(entryPoint string) (string, error) {
	if err := g.Validate(entryPoint); err != nil {
		return "", err
	}

	launcherPath := g.layout.LauncherPath(filepath.Base(entryPoint))
	rel, err := g.layout.Relativize(entryPoint)
	if err != nil {
		return "", err
	}

	script, err := Script(g.goos, rel)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(launcherPath), 0755); err != nil {
		return "", fmt.Errorf("creating launcher directory: %w", err)
	}
	if err := os.WriteFile(launcherPath, []byte(script), 0755); err != nil {
		return "", fmt.Errorf("writing launcher: %w", err)
	}

	g.logger.Debugf("Launcher %s -> %s", launcherPath, rel)
	return launcherPath, nil
}
