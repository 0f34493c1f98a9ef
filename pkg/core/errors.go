// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

// Pipeline-fatal errors. The feed or one of its services cannot be used, so
// no package can be installed until the feed recovers.
var (
	// ErrFeedUnavailable indicates the feed index could not be retrieved
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrServiceUnavailable indicates a feed service is missing or failing
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrMalformedResponse indicates a feed document could not be decoded
	ErrMalformedResponse = errors.New("malformed feed response")
)

// Package-fatal errors. Only the requested package is affected.
var (
	// ErrVersionNotFound indicates the search service returned no versions
	ErrVersionNotFound = errors.New("version not found")

	// ErrArchiveUnavailable indicates the package archive could not be downloaded
	ErrArchiveUnavailable = errors.New("archive unavailable")

	// ErrExtractionFailed indicates the archive could not be extracted
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrMalformedMetadata indicates the embedded command descriptor is invalid
	ErrMalformedMetadata = errors.New("malformed command metadata")

	// ErrNoToolsDirectory indicates the package has neither metadata nor a tools directory
	ErrNoToolsDirectory = errors.New("package has no tools directory")

	// ErrNoExecutableOffered indicates the tools directory holds nothing runnable
	ErrNoExecutableOffered = errors.New("package offers no executable")

	// ErrNotACliExtension indicates the entry point lacks the extension prefix
	ErrNotACliExtension = errors.New("not a cli extension")
)

var pipelineFatal = []error{
	ErrFeedUnavailable,
	ErrServiceUnavailable,
	ErrMalformedResponse,
}

// IsPipelineFatal reports whether err means the feed itself is unusable,
// as opposed to a failure specific to one package.
func IsPipelineFatal(err error) bool {
	for _, target := range pipelineFatal {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
