package archive

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/arc-language/extpm/internal/testutil"
	"github.com/arc-language/extpm/pkg/core"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestInstallExtractsFullTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "widget.nupkg")
	testutil.WriteZip(t, archivePath, map[string]string{
		"widget.nuspec":         "<package/>",
		"tools/ext-widget.sh":   "echo widget",
		"content/command.json":  `{"main":"tools/ext-widget.sh"}`,
		"lib/net8.0/deep/a.txt": "a",
	})

	target := filepath.Join(dir, "packages", "widget", "2.0.0")
	outcome, err := NewInstaller(nil).Install(archivePath, target, false)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if outcome != OutcomeExtracted {
		t.Errorf("outcome: got %s want %s", outcome, OutcomeExtracted)
	}

	if got := readFile(t, filepath.Join(target, "tools", "ext-widget.sh")); got != "echo widget" {
		t.Errorf("tools/ext-widget.sh: got %q", got)
	}
	if got := readFile(t, filepath.Join(target, "lib", "net8.0", "deep", "a.txt")); got != "a" {
		t.Errorf("lib/net8.0/deep/a.txt: got %q", got)
	}

	siblings, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatal(err)
	}
	if len(siblings) != 1 {
		t.Errorf("staging directory left behind: %v", siblings)
	}
}

func TestInstallExistingWithoutForceIsNoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "widget.nupkg")
	testutil.WriteZip(t, archivePath, map[string]string{"tools/ext-widget.sh": "new"})

	target := filepath.Join(dir, "target")
	if err := os.MkdirAll(filepath.Join(target, "tools"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "tools", "ext-widget.sh"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	outcome, err := NewInstaller(nil).Install(archivePath, target, false)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if outcome != OutcomeAlreadyInstalled {
		t.Errorf("outcome: got %s want %s", outcome, OutcomeAlreadyInstalled)
	}
	if got := readFile(t, filepath.Join(target, "tools", "ext-widget.sh")); got != "old" {
		t.Errorf("existing content changed: got %q", got)
	}
}

func TestInstallForceReplacesDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "widget.nupkg")
	testutil.WriteZip(t, archivePath, map[string]string{"tools/ext-widget.sh": "new"})

	target := filepath.Join(dir, "target")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(target, "stale.txt")
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	outcome, err := NewInstaller(nil).Install(archivePath, target, true)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if outcome != OutcomeReplaced {
		t.Errorf("outcome: got %s want %s", outcome, OutcomeReplaced)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file survived a forced install: %v", err)
	}
	if got := readFile(t, filepath.Join(target, "tools", "ext-widget.sh")); got != "new" {
		t.Errorf("tools/ext-widget.sh: got %q", got)
	}
}

func TestInstallCorruptArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "broken.nupkg")
	if err := os.WriteFile(archivePath, []byte("this is not an archive"), 0644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(dir, "target")
	_, err := NewInstaller(nil).Install(archivePath, target, false)
	if !errors.Is(err, core.ErrExtractionFailed) {
		t.Fatalf("error: got %v want %v", err, core.ErrExtractionFailed)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("target exists after failed extraction: %v", err)
	}
}

func TestInstallTruncatedZip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := testutil.ZipBytes(t, map[string]string{"tools/ext-a.sh": "echo a"})
	archivePath := filepath.Join(dir, "truncated.nupkg")
	if err := os.WriteFile(archivePath, data[:len(data)/2], 0644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(dir, "target")
	if _, err := NewInstaller(nil).Install(archivePath, target, false); !errors.Is(err, core.ErrExtractionFailed) {
		t.Fatalf("error: got %v want %v", err, core.ErrExtractionFailed)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("target exists after failed extraction: %v", err)
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.nupkg")
	testutil.WriteZip(t, archivePath, map[string]string{"../evil.txt": "gotcha"})

	err := NewInstaller(nil).Extract(archivePath, filepath.Join(dir, "out"))
	if !errors.Is(err, core.ErrExtractionFailed) {
		t.Fatalf("error: got %v want %v", err, core.ErrExtractionFailed)
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(err) {
		t.Errorf("escaping entry was written: %v", err)
	}
}

func TestInstallTarXz(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "widget.tar.xz")
	testutil.WriteTarXz(t, archivePath, map[string]string{
		"./tools/ext-widget.sh": "echo xz",
	})

	if format, err := DetectFormat(archivePath); err != nil || format != FormatTarXz {
		t.Fatalf("DetectFormat: got %q, %v", format, err)
	}

	target := filepath.Join(dir, "target")
	if _, err := NewInstaller(nil).Install(archivePath, target, false); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if got := readFile(t, filepath.Join(target, "tools", "ext-widget.sh")); got != "echo xz" {
		t.Errorf("tools/ext-widget.sh: got %q", got)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		data    []byte
		want    Format
		wantErr bool
	}{
		{"zip", testutil.ZipBytes(t, map[string]string{"a": "b"}), FormatZip, false},
		{"empty zip", testutil.ZipBytes(t, nil), FormatZip, false},
		{"text", []byte("hello"), "", true},
		{"empty", nil, "", true},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		if err := os.WriteFile(path, tt.data, 0644); err != nil {
			t.Fatal(err)
		}
		got, err := DetectFormat(path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("%s: got %q, %v; want %q, err=%v", tt.name, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestInstallTarXzRejectsSymlinkEscapes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("creating symlinks needs extra privileges on Windows")
	}
	t.Parallel()

	tests := []struct {
		name    string
		entries func(outside string) []testutil.TarEntry
	}{
		{"absolute link target", func(outside string) []testutil.TarEntry {
			return []testutil.TarEntry{
				{Name: "tools", Link: outside},
				{Name: "tools/ext-evil.sh", Body: "pwned"},
			}
		}},
		{"relative link target", func(string) []testutil.TarEntry {
			return []testutil.TarEntry{
				{Name: "tools", Link: "../../../outside"},
				{Name: "tools/ext-evil.sh", Body: "pwned"},
			}
		}},
		{"file under an in-tree directory link", func(string) []testutil.TarEntry {
			return []testutil.TarEntry{
				{Name: "lib/"},
				{Name: "tools", Link: "lib"},
				{Name: "tools/ext-a.sh", Body: "echo a"},
			}
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			outside := filepath.Join(dir, "outside")
			if err := os.Mkdir(outside, 0755); err != nil {
				t.Fatal(err)
			}
			archivePath := filepath.Join(dir, "evil.tar.xz")
			testutil.WriteTarXzEntries(t, archivePath, tt.entries(outside))

			target := filepath.Join(dir, "packages", "evil", "1.0.0")
			_, err := NewInstaller(nil).Install(archivePath, target, false)
			if !errors.Is(err, core.ErrExtractionFailed) {
				t.Fatalf("error: got %v want %v", err, core.ErrExtractionFailed)
			}
			entries, err := os.ReadDir(outside)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("archive wrote outside the target: %v", entries)
			}
			if _, err := os.Stat(target); !os.IsNotExist(err) {
				t.Errorf("target exists after rejected extraction: %v", err)
			}
		})
	}
}

func TestInstallTarXzKeepsContainedSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("creating symlinks needs extra privileges on Windows")
	}
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "linked.tar.xz")
	testutil.WriteTarXzEntries(t, archivePath, []testutil.TarEntry{
		{Name: "tools/real/ext-a.sh", Body: "echo a"},
		{Name: "tools/ext-a.sh", Link: "real/ext-a.sh"},
	})

	target := filepath.Join(dir, "target")
	if _, err := NewInstaller(nil).Install(archivePath, target, false); err != nil {
		t.Fatalf("Install: %v", err)
	}
	link, err := os.Readlink(filepath.Join(target, "tools", "ext-a.sh"))
	if err != nil || link != "real/ext-a.sh" {
		t.Errorf("symlink: got %q, %v", link, err)
	}
	if got := readFile(t, filepath.Join(target, "tools", "ext-a.sh")); got != "echo a" {
		t.Errorf("through symlink: got %q", got)
	}
}

func TestConcurrentInstallsOfSameTarget(t *testing.T) {
	t.Parallel()

	archiveDir := t.TempDir()
	archivePath := filepath.Join(archiveDir, "widget.nupkg")
	testutil.WriteZip(t, archivePath, map[string]string{
		"tools/ext-widget.sh": "echo widget",
		"lib/a.txt":           "a",
	})

	parent := t.TempDir()
	target := filepath.Join(parent, "2.0.0")
	installer := NewInstaller(nil)

	const workers = 16
	var wg sync.WaitGroup
	outcomes := make([]Outcome, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i], errs[i] = installer.Install(archivePath, target, false)
		}()
	}
	wg.Wait()

	extracted := 0
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Errorf("install %d: %v", i, errs[i])
			continue
		}
		switch outcomes[i] {
		case OutcomeExtracted:
			extracted++
		case OutcomeAlreadyInstalled:
		default:
			t.Errorf("install %d: unexpected outcome %s", i, outcomes[i])
		}
	}
	if extracted != 1 {
		t.Errorf("extracted outcomes: got %d want 1", extracted)
	}

	if got := readFile(t, filepath.Join(target, "tools", "ext-widget.sh")); got != "echo widget" {
		t.Errorf("tools/ext-widget.sh: got %q", got)
	}
	siblings, err := os.ReadDir(parent)
	if err != nil {
		t.Fatal(err)
	}
	if len(siblings) != 1 {
		t.Errorf("staging directories left behind: %v", siblings)
	}
}
