// internal/cli/alias.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/extpm/pkg/registry"
)

var aliasCmd = &cobra.Command{
	Use:   "alias [name package-id]",
	Short: "List or define package aliases",
	Long: `Without arguments, list the aliases in aliases.toml. With a name and a
package id, map the name to the id so it can be used with install and info.

Examples:
  extpm alias
  extpm alias widget Contoso.Widget.Tool`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: runAlias,
}

func runAlias(cmd *cobra.Command, args []string) error {
	path := aliasPath()
	reg, err := registry.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 2 {
		reg.Set(args[0], args[1])
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ %s -> %s\n", args[0], args[1])
		return nil
	}

	names := reg.Aliases()
	if len(names) == 0 {
		fmt.Fprintf(out, "No aliases defined in %s\n", path)
		return nil
	}
	for _, name := range names {
		fmt.Fprintf(out, "  %s -> %s\n", name, reg.Resolve(name))
	}
	return nil
}
