package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.FeedURL != DefaultFeedURL {
		t.Errorf("FeedURL: got %q want %q", cfg.FeedURL, DefaultFeedURL)
	}
	if cfg.CommandPrefix != DefaultCommandPrefix {
		t.Errorf("CommandPrefix: got %q want %q", cfg.CommandPrefix, DefaultCommandPrefix)
	}
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "feed_url: http://feed.local/index.json\ncommand_prefix: tool-\ntimeout: 30s\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.FeedURL != "http://feed.local/index.json" {
		t.Errorf("FeedURL: got %q", cfg.FeedURL)
	}
	if cfg.CommandPrefix != "tool-" {
		t.Errorf("CommandPrefix: got %q", cfg.CommandPrefix)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout: got %v", cfg.Timeout)
	}
	if cfg.Root == "" {
		t.Error("Root lost its default")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := DefaultConfig()
	want.Root = "/opt/extpm"
	want.IncludePrerelease = true

	if err := SaveConfig(want, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *got != *want {
		t.Fatalf("config: got %+v want %+v", got, want)
	}
}

func TestIsPipelineFatal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{ErrFeedUnavailable, true},
		{fmt.Errorf("fetching index: %w", ErrServiceUnavailable), true},
		{&Error{Op: "search", Err: ErrMalformedResponse}, true},
		{ErrVersionNotFound, false},
		{&Error{Op: "install", Package: "widget", Err: ErrNotACliExtension}, false},
		{errors.New("boom"), false},
	}
	for _, tt := range tests {
		if got := IsPipelineFatal(tt.err); got != tt.want {
			t.Errorf("IsPipelineFatal(%v): got %v want %v", tt.err, got, tt.want)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	err := &Error{Op: "install", Package: "widget", Err: ErrVersionNotFound}
	if got, want := err.Error(), "install widget: version not found"; got != want {
		t.Errorf("Error(): got %q want %q", got, want)
	}
	if !errors.Is(err, ErrVersionNotFound) {
		t.Error("Error does not unwrap to its cause")
	}
}
