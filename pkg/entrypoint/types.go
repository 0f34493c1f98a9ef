// pkg/entrypoint/types.go
package entrypoint

const (
	// MetadataPath is where a package may describe its entry point, relative
	// to the installation root
	MetadataPath = "content/command.json"

	// ToolsDir is scanned for executables when no metadata is present
	ToolsDir = "tools"
)

// Extensions lists the file extensions offered as entry points, highest
// priority first
var Extensions = []string{".exe", ".cmd", ".bat", ".sh", ".ps1"}

// Strategy resolves the entry point of an installed package
type Strategy interface {
	// Name identifies the strategy in logs and results
	Name() string

	// Resolve returns the absolute path of the entry point
	Resolve(installDir string) (string, error)
}

// Resolution is a resolved entry point and the strategy that found it
type Resolution struct {
	Path     string
	Strategy string
}

// CommandMetadata is the command descriptor embedded in a package
type CommandMetadata struct {
	Main string `json:"main"`
}
