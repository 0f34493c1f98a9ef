// pkg/feed/archive.go
package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arc-language/extpm/pkg/core"
)

// ArchiveURL builds the download URL of a package archive. Every segment is
// lower-cased because the flat container's storage is case-sensitive by path.
func ArchiveURL(baseAddress, packageID, version string) string {
	id := strings.ToLower(packageID)
	ver := strings.ToLower(version)
	return fmt.Sprintf("%s/%s/%s/%s", strings.TrimRight(baseAddress, "/"), id, ver, ArchiveFileName(id, ver))
}

// ArchiveFileName returns the lower-cased <id>.<version>.nupkg file name
func ArchiveFileName(packageID, version string) string {
	return strings.ToLower(fmt.Sprintf("%s.%s.%s", packageID, version, ArchiveExtension))
}

// ResolveArchiveURL selects the base-address resource of idx and builds the
// archive URL from it.
func ResolveArchiveURL(idx *Index, packageID, version string) (string, error) {
	base, ok := idx.PackageBaseAddress()
	if !ok {
		return "", fmt.Errorf("%w: feed lists no %s", core.ErrServiceUnavailable, BaseAddressTypePrefix)
	}
	return ArchiveURL(base.ID, packageID, version), nil
}

// FetchArchive downloads the archive of packageID at version into a
// uniquely named file under tempDir (os.TempDir() when empty) and returns its
// path. Removing the file is up to the caller.
func (c *Client) FetchArchive(ctx context.Context, idx *Index, packageID, version, tempDir string) (string, error) {
	downloadURL, err := ResolveArchiveURL(idx, packageID, version)
	if err != nil {
		return "", err
	}

	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	destPath := filepath.Join(tempDir, fmt.Sprintf("extpm-%s.%s", uuid.NewString(), ArchiveExtension))
	f, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	c.logger.Debugf("Downloading from: %s", downloadURL)

	written, err := c.Download(ctx, downloadURL, f)
	if err != nil {
		f.Close()
		os.Remove(destPath)
		return "", fmt.Errorf("%w: %w", core.ErrArchiveUnavailable, err)
	}

	c.logger.Debugf("Downloaded %d bytes to %s", written, destPath)
	return destPath, nil
}
