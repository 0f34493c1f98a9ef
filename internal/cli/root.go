// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arc-language/extpm/pkg/core"
	"github.com/arc-language/extpm/pkg/install"
	"github.com/arc-language/extpm/pkg/registry"
)

const envPrefix = "EXTPM"

var (
	cfgFile string
	config  *core.Config
	logger  *log.Logger
	v       = viper.New()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "extpm",
	Short: "CLI extension installer",
	Long: `extpm - CLI extension installer

Resolves extension packages on a NuGet v3 feed, installs them under a
single root and writes a launcher for each one into <root>/bin.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute executes the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/extpm/config.yaml)")
	flags.String("feed", "", "feed service index URL")
	flags.String("root", "", "installation root")
	flags.String("prefix", "", "file name prefix marking extension executables")
	flags.Bool("debug", false, "enable debug logging")

	for _, name := range []string{"feed", "root", "prefix", "debug"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Add commands
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads config.yaml and applies flags and EXTPM_* variables on top
func initConfig(cmd *cobra.Command, args []string) error {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if feed := v.GetString("feed"); feed != "" {
		config.FeedURL = feed
	}
	if root := v.GetString("root"); root != "" {
		config.Root = root
	}
	if prefix := v.GetString("prefix"); prefix != "" {
		config.CommandPrefix = prefix
	}
	if v.GetBool("debug") {
		config.Debug = true
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "extpm",
		ReportTimestamp: config.Debug,
	})
	logger.SetLevel(log.WarnLevel)
	if config.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

// configPath is the config file in use, explicit or default
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(core.ConfigDir(), "config.yaml")
}

// aliasPath is the alias file kept next to the config file
func aliasPath() string {
	return registry.DefaultPath(filepath.Dir(configPath()))
}

// newManager builds the install pipeline from the loaded configuration
func newManager() (*install.Manager, error) {
	aliases, err := registry.Load(aliasPath())
	if err != nil {
		return nil, err
	}
	return install.NewManager(config, aliases, logger), nil
}
