// pkg/archive/types.go
package archive

import (
	"io"

	"github.com/charmbracelet/log"
)

// Outcome tells the caller what Install did to the target directory
type Outcome int

const (
	// OutcomeExtracted means the target did not exist and was created
	OutcomeExtracted Outcome = iota
	// OutcomeReplaced means an existing target was removed and re-extracted
	OutcomeReplaced
	// OutcomeAlreadyInstalled means the target existed and was left untouched
	OutcomeAlreadyInstalled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExtracted:
		return "extracted"
	case OutcomeReplaced:
		return "replaced"
	case OutcomeAlreadyInstalled:
		return "already installed"
	default:
		return "unknown"
	}
}

// Format identifies the container format of a downloaded archive
type Format string

const (
	// FormatZip is a zip container (.nupkg)
	FormatZip Format = "zip"
	// FormatTarXz is an xz-compressed tar stream
	FormatTarXz Format = "tar.xz"
)

// Installer extracts package archives into installation directories
type Installer struct {
	logger *log.Logger
}

// NewInstaller creates an Installer. A nil logger discards output.
func NewInstaller(logger *log.Logger) *Installer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Installer{logger: logger}
}
