// pkg/archive/installer.go
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arc-language/extpm/pkg/core"
)

// Install extracts archivePath into targetDir.
//
// An existing targetDir is left untouched unless force is set, in which case
// it is removed first. Extraction happens in a sibling staging directory that
// is renamed onto targetDir once every entry is written, so targetDir only
// ever exists fully extracted.
func (in *Installer) Install(archivePath, targetDir string, force bool) (Outcome, error) {
	outcome := OutcomeExtracted

	if _, err := os.Stat(targetDir); err == nil {
		if !force {
			in.logger.Debugf("Target already exists, skipping extraction: %s", targetDir)
			return OutcomeAlreadyInstalled, nil
		}
		in.logger.Debugf("Removing existing installation: %s", targetDir)
		if err := os.RemoveAll(targetDir); err != nil {
			return outcome, fmt.Errorf("%w: removing %s: %w", core.ErrExtractionFailed, targetDir, err)
		}
		outcome = OutcomeReplaced
	} else if !os.IsNotExist(err) {
		return outcome, fmt.Errorf("%w: %w", core.ErrExtractionFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(targetDir), 0755); err != nil {
		return outcome, fmt.Errorf("%w: creating parent directory: %w", core.ErrExtractionFailed, err)
	}

	staging := filepath.Join(filepath.Dir(targetDir),
		fmt.Sprintf(".%s.staging-%s", filepath.Base(targetDir), uuid.NewString()))

	if err := in.Extract(archivePath, staging); err != nil {
		os.RemoveAll(staging)
		return outcome, err
	}

	if err := os.Rename(staging, targetDir); err != nil {
		os.RemoveAll(staging)
		// another install finished first; its tree is just as complete
		if _, statErr := os.Stat(targetDir); statErr == nil && !force {
			in.logger.Debugf("Target appeared during extraction, keeping it: %s", targetDir)
			return OutcomeAlreadyInstalled, nil
		}
		return outcome, fmt.Errorf("%w: moving staging directory into place: %w", core.ErrExtractionFailed, err)
	}

	in.logger.Debugf("Installed into %s (%s)", targetDir, outcome)
	return outcome, nil
}

// Extract materialises every entry of archivePath under destDir, creating it
func (in *Installer) Extract(archivePath, destDir string) error {
	format, err := DetectFormat(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrExtractionFailed, err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("%w: creating extract directory: %w", core.ErrExtractionFailed, err)
	}

	in.logger.Debugf("Extracting %s archive: %s -> %s", format, archivePath, destDir)

	switch format {
	case FormatZip:
		err = in.extractZip(archivePath, destDir)
	case FormatTarXz:
		err = in.extractTarXz(archivePath, destDir)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrExtractionFailed, err)
	}
	return nil
}

// safeJoin joins name onto destDir, rejecting entries that would land
// outside of it
func safeJoin(destDir, name string) (string, error) {
	path := filepath.Join(destDir, name)
	if !strings.HasPrefix(path, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid file path: %s", name)
	}
	return path, nil
}

// checkNoSymlinks fails when path, or any directory between destDir and
// path, already exists as a symlink. Writing through one could land outside
// destDir even though path itself looks contained.
func checkNoSymlinks(destDir, path string) error {
	rel, err := filepath.Rel(destDir, path)
	if err != nil {
		return err
	}

	cur := filepath.Clean(destDir)
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		cur = filepath.Join(cur, part)
		info, err := os.Lstat(cur)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("invalid file path: %s goes through symlink %s", rel, cur)
		}
	}
	return nil
}

// checkLinkTarget rejects symlinks at linkPath whose target is absolute or
// resolves outside destDir
func checkLinkTarget(destDir, linkPath, linkname string) error {
	if filepath.IsAbs(linkname) || strings.HasPrefix(linkname, "/") {
		return fmt.Errorf("invalid symlink %s -> %s: absolute target", linkPath, linkname)
	}
	root := filepath.Clean(destDir)
	resolved := filepath.Join(filepath.Dir(linkPath), linkname)
	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return fmt.Errorf("invalid symlink %s -> %s: target leaves the archive", linkPath, linkname)
	}
	return nil
}
