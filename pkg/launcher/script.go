// pkg/launcher/script.go
package launcher

import (
	"fmt"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Script renders the launcher stub for an entry point located at rel,
// relative to the launcher's own directory. The path is resolved when the
// stub runs, not when it is written.
func Script(goos, rel string) (string, error) {
	ext := strings.ToLower(filepath.Ext(rel))

	if goos == "windows" {
		rel = strings.ReplaceAll(rel, "/", `\`)
		target := fmt.Sprintf(`"%%~dp0%s"`, rel)
		if ext == ".ps1" {
			return fmt.Sprintf("@powershell -NoProfile -ExecutionPolicy Bypass -File %s %%*\r\n", target), nil
		}
		return fmt.Sprintf("@%s %%*\r\n", target), nil
	}

	target := fmt.Sprintf(`"$(dirname "$0")/%s"`, escapeDoubleQuoted(filepath.ToSlash(rel)))
	switch ext {
	case ".ps1":
		target = "pwsh -NoProfile -File " + target
	case ".sh":
		target = "sh " + target
	}

	script := fmt.Sprintf("#!/bin/sh\nexec %s \"$@\"\n", target)
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "launcher"); err != nil {
		return "", fmt.Errorf("generated launcher does not parse: %w", err)
	}
	return script, nil
}

// escapeDoubleQuoted escapes the characters that stay special inside
// double quotes in POSIX sh
func escapeDoubleQuoted(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"', '\\', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
