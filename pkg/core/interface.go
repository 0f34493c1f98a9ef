// pkg/core/interface.go
package core

import "context"

// PackageManager is implemented by the install pipeline and consumed by the CLI
type PackageManager interface {
	// Install resolves, downloads, extracts and links a package
	Install(ctx context.Context, opts *InstallOptions) (*Package, error)

	// Resolve looks a package up on the feed without downloading it
	Resolve(ctx context.Context, name string, includePrerelease bool) (*Package, error)

	// List lists installed packages
	List() ([]Package, error)
}

// InstallOptions configures package installation
type InstallOptions struct {
	Package           string // Package identifier or alias
	IncludePrerelease bool   // Let the search service return pre-release versions
	Force             bool   // Remove and re-extract an existing installation
	Relink            bool   // Regenerate the launcher of an existing installation
}
