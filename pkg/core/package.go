// pkg/core/package.go
package core

// Package describes a package as seen by one pipeline run or a directory scan
type Package struct {
	Name             string // Package identifier as requested
	Version          string // Resolved version, verbatim from the feed
	Prerelease       bool   // Version carries a pre-release tag
	ArchiveURL       string // Where the archive is (or would be) downloaded from
	InstallDir       string // Installation directory
	EntryPoint       string // Absolute path of the executable entry point
	Launcher         string // Path of the generated launcher stub
	Installed        bool   // Whether the package is installed
	AlreadyInstalled bool   // Install was skipped because the directory existed
}
