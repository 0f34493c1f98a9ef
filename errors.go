// errors.go
package extpm

import "github.com/arc-language/extpm/pkg/core"

// Pipeline-fatal errors. No package can be installed until the feed recovers.
var (
	ErrFeedUnavailable    = core.ErrFeedUnavailable
	ErrServiceUnavailable = core.ErrServiceUnavailable
	ErrMalformedResponse  = core.ErrMalformedResponse
)

// Package-fatal errors. Only the requested package is affected.
var (
	ErrVersionNotFound     = core.ErrVersionNotFound
	ErrArchiveUnavailable  = core.ErrArchiveUnavailable
	ErrExtractionFailed    = core.ErrExtractionFailed
	ErrMalformedMetadata   = core.ErrMalformedMetadata
	ErrNoToolsDirectory    = core.ErrNoToolsDirectory
	ErrNoExecutableOffered = core.ErrNoExecutableOffered
	ErrNotACliExtension    = core.ErrNotACliExtension
)

// Error wraps an error with the operation and package it happened in
type Error = core.Error

// IsPipelineFatal reports whether err means the feed itself is unusable
func IsPipelineFatal(err error) bool {
	return core.IsPipelineFatal(err)
}
