// pkg/registry/registry.go
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the alias file kept next to the config file
const FileName = "aliases.toml"

// file is the on-disk shape of aliases.toml
type file struct {
	Aliases map[string]string `toml:"aliases"`
}

// Registry maps short names to feed package ids
type Registry struct {
	path    string
	aliases map[string]string // keyed by lower-cased alias
}

// New creates an empty Registry backed by path
func New(path string) *Registry {
	return &Registry{
		path:    path,
		aliases: make(map[string]string),
	}
}

// DefaultPath returns <configDir>/aliases.toml
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, FileName)
}

// Load reads the alias file at path. A missing file yields an empty registry.
func Load(path string) (*Registry, error) {
	r := New(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("registry: reading %s: %w", path, err)
	}

	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", path, err)
	}

	for alias, id := range f.Aliases {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("registry: alias '%s' has an empty package id", alias)
		}
		r.aliases[strings.ToLower(alias)] = id
	}
	return r, nil
}

// Resolve returns the package id for name. Names without an alias
// resolve to themselves.
func (r *Registry) Resolve(name string) string {
	if id, ok := r.aliases[strings.ToLower(name)]; ok {
		return id
	}
	return name
}

// Set adds or replaces an alias
func (r *Registry) Set(alias, id string) {
	r.aliases[strings.ToLower(alias)] = id
}

// Aliases returns the alias names in sorted order
func (r *Registry) Aliases() []string {
	names := make([]string, 0, len(r.aliases))
	for name := range r.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the registry back to its file
func (r *Registry) Save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("registry: creating directory: %w", err)
	}

	out, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("registry: creating %s: %w", r.path, err)
	}
	defer out.Close()

	if err := toml.NewEncoder(out).Encode(file{Aliases: r.aliases}); err != nil {
		return fmt.Errorf("registry: writing %s: %w", r.path, err)
	}
	return nil
}
