// pkg/install/manager.go
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/arc-language/extpm/pkg/archive"
	"github.com/arc-language/extpm/pkg/core"
	"github.com/arc-language/extpm/pkg/entrypoint"
	"github.com/arc-language/extpm/pkg/feed"
	"github.com/arc-language/extpm/pkg/launcher"
	"github.com/arc-language/extpm/pkg/layout"
	"github.com/arc-language/extpm/pkg/registry"
)

var _ core.PackageManager = (*Manager)(nil)

// Manager runs the install pipeline against a single feed and root
type Manager struct {
	config    *core.Config
	layout    *layout.Layout
	client    *feed.Client
	installer *archive.Installer
	resolver  *entrypoint.Resolver
	generator *launcher.Generator
	aliases   *registry.Registry
	logger    *log.Logger
	tempDir   string
}

// NewManager creates a Manager. A nil config uses the defaults, a nil
// registry resolves every name to itself and a nil logger discards output.
func NewManager(cfg *core.Config, aliases *registry.Registry, logger *log.Logger) *Manager {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = core.DefaultTimeout
	}
	if aliases == nil {
		aliases = registry.New("")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := layout.New(cfg.Root)
	m := &Manager{
		config:    cfg,
		layout:    l,
		client:    feed.NewClientWithTimeout(cfg.Timeout, logger),
		installer: archive.NewInstaller(logger),
		resolver:  entrypoint.NewResolver(logger),
		generator: launcher.NewGenerator(l, cfg.CommandPrefix, logger),
		aliases:   aliases,
		logger:    logger,
		tempDir:   os.TempDir(),
	}

	m.logger.Debug("Initialized install manager",
		"feed", cfg.FeedURL,
		"root", cfg.Root,
		"prefix", cfg.CommandPrefix,
	)
	return m
}

// WithTempDir sets where archives are downloaded before extraction
func (m *Manager) WithTempDir(dir string) *Manager {
	m.tempDir = dir
	return m
}

// Layout returns the directory layout the manager installs into
func (m *Manager) Layout() *layout.Layout {
	return m.layout
}

// Install resolves, downloads, extracts and links a package. An existing
// installation is left untouched unless opts.Force or opts.Relink is set.
func (m *Manager) Install(ctx context.Context, opts *core.InstallOptions) (*core.Package, error) {
	if opts == nil || opts.Package == "" {
		return nil, fmt.Errorf("Package is required in InstallOptions")
	}

	name := m.aliases.Resolve(opts.Package)
	if name != opts.Package {
		m.logger.Debugf("Alias %s -> %s", opts.Package, name)
	}

	m.logger.Debugf("Starting install for package: %s", name)
	m.logger.Debug("Install options",
		"prerelease", opts.IncludePrerelease,
		"force", opts.Force,
		"relink", opts.Relink,
	)

	// 1-2. Feed index and version
	pkg, idx, err := m.locate(ctx, name, opts.IncludePrerelease)
	if err != nil {
		return nil, &core.Error{Op: "install", Package: name, Err: err}
	}

	// 3-4. Download and extract, unless already installed
	if exists(pkg.InstallDir) && !opts.Force {
		pkg.Installed = true
		pkg.AlreadyInstalled = true
		if !opts.Relink {
			m.logger.Debugf("Step 3: %s already present, skipping", pkg.InstallDir)
			m.logger.Infof("%s %s is already installed", name, pkg.Version)
			return pkg, nil
		}
		m.logger.Debugf("Step 3: %s already present, relinking", pkg.InstallDir)
	} else {
		if err := m.extract(ctx, idx, pkg, opts.Force); err != nil {
			return nil, &core.Error{Op: "install", Package: name, Err: err}
		}
	}

	// 5. Entry point
	m.logger.Debugf("Step 5: Resolving entry point...")
	res, err := m.resolver.Resolve(pkg.InstallDir)
	if err != nil {
		return nil, &core.Error{Op: "install", Package: name, Err: err}
	}
	pkg.EntryPoint = res.Path
	m.logger.Debugf("  ✓ Entry point: %s (%s)", res.Path, res.Strategy)

	// 6. Launcher
	m.logger.Debugf("Step 6: Writing launcher...")
	launcherPath, err := m.generator.Generate(res.Path)
	if err != nil {
		return nil, &core.Error{Op: "install", Package: name, Err: err}
	}
	pkg.Launcher = launcherPath
	m.logger.Debugf("  ✓ Launcher: %s", launcherPath)

	m.logger.Infof("Installed %s %s", name, pkg.Version)
	return pkg, nil
}

// extract runs steps 3 and 4: download the archive and install it into
// pkg.InstallDir. The downloaded archive is always removed afterwards.
func (m *Manager) extract(ctx context.Context, idx *feed.Index, pkg *core.Package, force bool) error {
	m.logger.Debugf("Step 3: Downloading archive...")
	archivePath, err := m.client.FetchArchive(ctx, idx, pkg.Name, pkg.Version, m.tempDir)
	if err != nil {
		return err
	}
	defer m.removeArchive(archivePath)
	m.logger.Debugf("  ✓ Download complete")

	m.logger.Debugf("Step 4: Extracting to %s...", pkg.InstallDir)
	outcome, err := m.installer.Install(archivePath, pkg.InstallDir, force)
	if err != nil {
		return err
	}
	m.logger.Debugf("  ✓ Extraction complete (%s)", outcome)

	pkg.Installed = true
	// another process may have finished extracting first
	pkg.AlreadyInstalled = outcome == archive.OutcomeAlreadyInstalled
	return nil
}

func (m *Manager) removeArchive(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		m.logger.Warnf("failed to remove archive %s: %v", path, err)
	}
}

// Resolve looks a package up on the feed without downloading it
func (m *Manager) Resolve(ctx context.Context, name string, includePrerelease bool) (*core.Package, error) {
	name = m.aliases.Resolve(name)

	pkg, _, err := m.locate(ctx, name, includePrerelease)
	if err != nil {
		return nil, &core.Error{Op: "resolve", Package: name, Err: err}
	}
	pkg.Installed = exists(pkg.InstallDir)
	return pkg, nil
}

// locate runs steps 1 and 2 and derives everything that follows from the
// resolved version without touching the filesystem
func (m *Manager) locate(ctx context.Context, name string, includePrerelease bool) (*core.Package, *feed.Index, error) {
	includePrerelease = includePrerelease || m.config.IncludePrerelease

	m.logger.Debugf("Step 1: Fetching feed index...")
	idx, err := m.client.FetchIndex(ctx, m.config.FeedURL)
	if err != nil {
		return nil, nil, err
	}
	m.logger.Debugf("  ✓ %d resources", len(idx.Resources))

	m.logger.Debugf("Step 2: Resolving version...")
	version, err := m.client.Locate(ctx, idx, name, includePrerelease)
	if err != nil {
		return nil, nil, err
	}

	pkg := &core.Package{
		Name:       name,
		Version:    version,
		Prerelease: feed.IsPrerelease(version),
		InstallDir: m.layout.InstallDir(name, version),
	}
	if pkg.Prerelease {
		m.logger.Debugf("  ✓ Version: %s (pre-release)", version)
	} else {
		m.logger.Debugf("  ✓ Version: %s", version)
	}

	archiveURL, err := feed.ResolveArchiveURL(idx, name, version)
	if err != nil {
		return nil, nil, err
	}
	pkg.ArchiveURL = archiveURL
	return pkg, idx, nil
}

// List lists installed packages along with their entry point and launcher
// when those can still be found
func (m *Manager) List() ([]core.Package, error) {
	installed, err := m.layout.List()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", m.layout.PackagesDir(), err)
	}

	pkgs := make([]core.Package, 0, len(installed))
	for _, in := range installed {
		pkg := core.Package{
			Name:       in.Name,
			Version:    in.Version,
			Prerelease: feed.IsPrerelease(in.Version),
			InstallDir: in.Dir,
			Installed:  true,
		}
		if res, err := m.resolver.Resolve(in.Dir); err == nil {
			pkg.EntryPoint = res.Path
			if err := m.generator.Validate(res.Path); err == nil {
				if launcherPath := m.layout.LauncherPath(filepath.Base(res.Path)); exists(launcherPath) {
					pkg.Launcher = launcherPath
				}
			}
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
