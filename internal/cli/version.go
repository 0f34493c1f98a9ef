// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X ...cli.version=..."
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "extpm version %s\n", version)
		fmt.Fprintln(out, "CLI extension installer")
		fmt.Fprintln(out, "https://github.com/arc-language/extpm")
	},
}
