package main

import (
	"github.com/spf13/cobra"
)

// rootFlags holds the persistent flags that override configuration values.
type rootFlags struct {
	config   string
	registry string
	output   string
	workers  int
	logLevel string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "adrtools",
		Short:         "ADR dialogue cue tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.registry, "registry", "", "Casting registry JSON (overrides paths.registry)")
	pf.StringVarP(&flags.output, "output", "o", "", "Output directory (overrides paths.output_dir)")
	pf.IntVarP(&flags.workers, "workers", "w", 0, "Worker count (overrides batch.workers)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newNormalizeCommand(ctx))
	rootCmd.AddCommand(newMergeCommand(ctx))
	rootCmd.AddCommand(newDensityCommand(ctx))
	rootCmd.AddCommand(newSpeakersCommand(ctx))
	rootCmd.AddCommand(newNamesCommand(ctx))
	rootCmd.AddCommand(newLinesCommand(ctx))
	rootCmd.AddCommand(newRuntimeCommand(ctx))
	rootCmd.AddCommand(newRegistryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
