package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"adrtools/internal/config"
	"adrtools/internal/deps"
	"adrtools/internal/speakers"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set paths.registry (or export ADRTOOLS_REGISTRY) before running normalize.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration, registry and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if _, err := os.Stat(ctx.configPath); err != nil {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}

			for _, line := range renderSectionHeader("Paths", colorize) {
				fmt.Fprintln(out, line)
			}
			failed := false
			if err := cfg.RequireOutputDir(); err != nil {
				failed = true
				fmt.Fprintln(out, renderStatusLine("Output", statusError, err.Error(), colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Output", statusOK, cfg.Paths.OutputDir, colorize))
			}
			if err := cfg.RequireRegistry(); err != nil {
				failed = true
				fmt.Fprintln(out, renderStatusLine("Registry", statusError, err.Error(), colorize))
			} else if reg, err := speakers.LoadRegistry(cfg.Paths.Registry); err != nil {
				failed = true
				fmt.Fprintln(out, renderStatusLine("Registry", statusError, err.Error(), colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Registry", statusOK,
					fmt.Sprintf("%d speakers in %s", len(reg.Speakers), cfg.Paths.Registry), colorize))
			}

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			statuses := deps.CheckBinaries([]deps.Requirement{deps.FFprobe(cfg.FFprobeBinary())})
			for _, status := range statuses {
				kind := statusOK
				detail := status.Command
				if !status.Available {
					kind = statusWarn
					detail = status.Detail + " (optional: runtime, density --media)"
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, detail, colorize))
			}
			if missing := deps.Missing(statuses); len(missing) > 0 {
				failed = true
			}

			if failed {
				return fmt.Errorf("configuration invalid")
			}
			fmt.Fprintf(out, "Configuration valid (workers %d, frame rate %s)\n",
				cfg.Batch.Workers, formatRate(cfg.Timing.FrameRate))
			return nil
		},
	}
}

func formatRate(fps float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", fps), "0"), ".")
}
