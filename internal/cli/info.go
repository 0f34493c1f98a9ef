// internal/cli/info.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoPrerelease bool

var infoCmd = &cobra.Command{
	Use:   "info [package]",
	Short: "Show information about a package",
	Long:  `Resolve a package on the configured feed without downloading it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoPrerelease, "prerelease", false, "allow pre-release versions")
}

func runInfo(cmd *cobra.Command, args []string) error {
	pm, err := newManager()
	if err != nil {
		return fmt.Errorf("initializing installer: %w", err)
	}

	pkg, err := pm.Resolve(cmd.Context(), args[0], infoPrerelease)
	if err != nil {
		return fmt.Errorf("getting package info: %w", err)
	}

	// Display info
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Package: %s\n", pkg.Name)
	fmt.Fprintf(out, "Version: %s\n", pkg.Version)
	if pkg.Prerelease {
		fmt.Fprintf(out, "Pre-release: yes\n")
	}
	fmt.Fprintf(out, "Archive: %s\n", pkg.ArchiveURL)
	fmt.Fprintf(out, "Install dir: %s\n", pkg.InstallDir)
	fmt.Fprintf(out, "Installed: %v\n", pkg.Installed)

	return nil
}
