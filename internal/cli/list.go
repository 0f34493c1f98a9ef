// internal/cli/list.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed extensions",
	Long:  `List every package installed under the configured root.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	pm, err := newManager()
	if err != nil {
		return fmt.Errorf("initializing installer: %w", err)
	}

	pkgs, err := pm.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(pkgs) == 0 {
		fmt.Fprintf(out, "No extensions installed in %s\n", config.Root)
		return nil
	}

	fmt.Fprintf(out, "Installed in %s:\n", config.Root)
	for _, pkg := range pkgs {
		marker := " "
		if pkg.Launcher != "" {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %s %s\n", marker, pkg.Name, pkg.Version)
	}
	fmt.Fprintf(out, "\n* = launcher present\n")

	return nil
}
