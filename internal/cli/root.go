package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ktile/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The configuration file is loaded once before any subcommand runs, so
// subcommands read c.Config and apply their own flags on top.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ktile enumerates completable k-distance tiles",
		Long: `ktile enumerates the w×h tiles of anchors that are pairwise more than k apart,
keeps those whose interior is dominated, and verifies with a SAT solver that
each tile can be completed by anchors placed outside it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ktile/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.labelCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
