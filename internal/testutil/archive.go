// internal/testutil/archive.go
package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

// ZipBytes builds an in-memory zip archive holding files (name -> content).
// Entries are written in name order.
func ZipBytes(t testing.TB, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range sortedKeys(files) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("writing zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a zip archive holding files to path
func WriteZip(t testing.TB, path string, files map[string]string) {
	t.Helper()
	if err := os.WriteFile(path, ZipBytes(t, files), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// TarEntry is one entry of a tar.xz archive built by WriteTarXzEntries.
// Entries with a Link are written as symlinks, entries whose Name ends in a
// slash as directories.
type TarEntry struct {
	Name string
	Body string
	Link string
}

// WriteTarXz writes an xz-compressed tar archive holding files to path
func WriteTarXz(t testing.TB, path string, files map[string]string) {
	t.Helper()

	entries := make([]TarEntry, 0, len(files))
	for _, name := range sortedKeys(files) {
		entries = append(entries, TarEntry{Name: name, Body: files[name]})
	}
	WriteTarXzEntries(t, path, entries)
}

// WriteTarXzEntries writes entries, in order, to an xz-compressed tar
// archive at path
func WriteTarXzEntries(t testing.TB, path string, entries []TarEntry) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	xw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("creating xz writer: %v", err)
	}
	tw := tar.NewWriter(xw)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: 0755}
		switch {
		case e.Link != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.Link
		case strings.HasSuffix(e.Name, "/"):
			hdr.Typeflag = tar.TypeDir
		default:
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing tar header %s: %v", e.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatalf("writing tar entry %s: %v", e.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("closing xz: %v", err)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
