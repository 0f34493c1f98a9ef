// pkg/entrypoint/scan.go
package entrypoint

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/extpm/pkg/core"
)

// HeuristicScan looks through the tools directory for the first file with
// the highest-priority executable extension
type HeuristicScan struct{}

// Name implements Strategy
func (HeuristicScan) Name() string { return "scan" }

// Resolve implements Strategy
func (HeuristicScan) Resolve(installDir string) (string, error) {
	toolsDir := filepath.Join(installDir, ToolsDir)

	info, err := os.Stat(toolsDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", core.ErrNoToolsDirectory, toolsDir)
	}

	// first match per extension, in lexical walk order
	found := make(map[string]string, len(Extensions))
	err = filepath.WalkDir(toolsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !isRegularFile(path, d) {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, seen := found[ext]; !seen {
			found[ext] = path
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scanning %s: %w", toolsDir, err)
	}

	for _, ext := range Extensions {
		if path, ok := found[ext]; ok {
			return filepath.Abs(path)
		}
	}

	return "", fmt.Errorf("%w: nothing in %s matches %s", core.ErrNoExecutableOffered,
		toolsDir, strings.Join(Extensions, ", "))
}

// isRegularFile reports whether d is a regular file or a symlink to one.
// Extraction keeps link targets inside the package.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
