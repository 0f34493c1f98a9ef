// pkg/layout/layout.go
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Provider maps packages and executables to paths on disk
type Provider interface {
	// InstallDir returns the installation directory of name at version
	InstallDir(name, version string) string

	// LauncherPath returns where the launcher for an executable is written
	LauncherPath(executableFileName string) string

	// Relativize expresses an absolute path relative to the launcher directory
	Relativize(absPath string) (string, error)
}

// Layout is the default Provider, rooted at a single directory
type Layout struct {
	Root string
	OS   string // runtime.GOOS unless overridden
}

// Installed is a package found on disk
type Installed struct {
	Name    string
	Version string
	Dir     string
}

// New creates a Layout for the running platform
func New(root string) *Layout {
	return &Layout{Root: root, OS: runtime.GOOS}
}

// PackagesDir holds one directory per package id
func (l *Layout) PackagesDir() string {
	return filepath.Join(l.Root, "packages")
}

// BinDir holds the launcher stubs
func (l *Layout) BinDir() string {
	return filepath.Join(l.Root, "bin")
}

// InstallDir implements Provider
func (l *Layout) InstallDir(name, version string) string {
	return filepath.Join(l.PackagesDir(), strings.ToLower(name), strings.ToLower(version))
}

// LauncherPath implements Provider. The launcher is named after the
// executable's stem; Windows launchers get a .cmd extension.
func (l *Layout) LauncherPath(executableFileName string) string {
	stem := strings.TrimSuffix(executableFileName, filepath.Ext(executableFileName))
	if l.OS == "windows" {
		stem += ".cmd"
	}
	return filepath.Join(l.BinDir(), stem)
}

// Relativize implements Provider
func (l *Layout) Relativize(absPath string) (string, error) {
	rel, err := filepath.Rel(l.BinDir(), absPath)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", absPath, err)
	}
	return rel, nil
}

// List returns every installed package, sorted by name then version
func (l *Layout) List() ([]Installed, error) {
	names, err := os.ReadDir(l.PackagesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []Installed{}, nil
		}
		return nil, err
	}

	var installed []Installed
	for _, name := range names {
		if !name.IsDir() || strings.HasPrefix(name.Name(), ".") {
			continue
		}

		versions, err := os.ReadDir(filepath.Join(l.PackagesDir(), name.Name()))
		if err != nil {
			continue
		}
		for _, v := range versions {
			// staging directories are hidden
			if !v.IsDir() || strings.HasPrefix(v.Name(), ".") {
				continue
			}
			installed = append(installed, Installed{
				Name:    name.Name(),
				Version: v.Name(),
				Dir:     filepath.Join(l.PackagesDir(), name.Name(), v.Name()),
			})
		}
	}

	sort.Slice(installed, func(i, j int) bool {
		if installed[i].Name != installed[j].Name {
			return installed[i].Name < installed[j].Name
		}
		return installed[i].Version < installed[j].Version
	})
	return installed, nil
}

// OnPath reports whether the launcher directory is listed in $PATH
func (l *Layout) OnPath() bool {
	bin := filepath.Clean(l.BinDir())
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir != "" && filepath.Clean(dir) == bin {
			return true
		}
	}
	return false
}
