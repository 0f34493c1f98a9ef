// internal/cli/install.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/extpm/pkg/core"
)

var (
	installPrerelease bool
	installForce      bool
	installRelink     bool
)

// errInstallFailed is returned when at least one package failed to install
var errInstallFailed = errors.New("one or more packages failed to install")

var installCmd = &cobra.Command{
	Use:   "install [package...]",
	Short: "Install one or more extensions",
	Long: `Install extension packages from the configured feed.

Examples:
  extpm install widget
  extpm install Contoso.Widget.Tool --prerelease
  extpm install widget --force
  extpm install widget gizmo`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installPrerelease, "prerelease", false, "allow pre-release versions")
	installCmd.Flags().BoolVar(&installForce, "force", false, "remove and re-extract an existing installation")
	installCmd.Flags().BoolVar(&installRelink, "relink", false, "regenerate the launcher of an existing installation")
}

func runInstall(cmd *cobra.Command, args []string) error {
	pm, err := newManager()
	if err != nil {
		return fmt.Errorf("initializing installer: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	failed := false

	// Install each package
	for _, name := range args {
		fmt.Fprintf(out, "Installing %s...\n", name)

		pkg, err := pm.Install(cmd.Context(), &core.InstallOptions{
			Package:           name,
			IncludePrerelease: installPrerelease,
			Force:             installForce,
			Relink:            installRelink,
		})
		if err != nil {
			if core.IsPipelineFatal(err) {
				// the feed is unusable, so every remaining package would fail too
				return err
			}
			fmt.Fprintf(errOut, "✗ Failed to install %s: %v\n", name, err)
			failed = true
			continue
		}

		if pkg.AlreadyInstalled && pkg.Launcher == "" {
			fmt.Fprintf(out, "✓ %s %s is already installed\n", pkg.Name, pkg.Version)
			continue
		}
		fmt.Fprintf(out, "✓ Successfully installed %s %s\n", pkg.Name, pkg.Version)
		fmt.Fprintf(out, "  Launcher: %s\n", pkg.Launcher)
	}

	if !pm.Layout().OnPath() {
		fmt.Fprintf(errOut, "Note: %s is not on your PATH\n", pm.Layout().BinDir())
	}

	if failed {
		return errInstallFailed
	}
	return nil
}
