// internal/testutil/doc.go

// Package testutil holds helpers shared by package tests: archive builders
// and a fake NuGet-style feed.
package testutil
