package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"adrtools/internal/faults"
	"adrtools/internal/speakers"
)

func newRegistryCommand(ctx *commandContext) *cobra.Command {
	registryCmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the casting registry",
	}

	registryCmd.AddCommand(newRegistryShowCommand(ctx))
	registryCmd.AddCommand(newRegistryResolveCommand(ctx))
	return registryCmd
}

func newRegistryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List registry speakers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireRegistry(); err != nil {
				return faults.Wrap(faults.ErrConfiguration, "registry", "locate", "", err)
			}
			reg, err := speakers.LoadRegistry(cfg.Paths.Registry)
			if err != nil {
				return err
			}
			if jsonOutput {
				return reg.Encode(cmd.OutOrStdout())
			}

			rows := make([][]string, 0, len(reg.Speakers))
			for _, entry := range reg.Speakers {
				aliases := make([]string, 0, len(entry.Aliases))
				for _, alias := range entry.Aliases {
					aliases = append(aliases, fmt.Sprintf("%s (%d)", alias.Alias, alias.Ratio))
				}
				rows = append(rows, []string{
					entry.Name,
					joinOrDash(entry.Nicknames),
					entry.Casting.String(),
					joinOrDash(entry.Ignore),
					joinOrDash(aliases),
				})
			}
			headers := []string{"Name", "Nicknames", "Casting", "Ignore", "Aliases"}
			out := cmd.OutOrStdout()
			if !shouldColorize(out) {
				_, err := fmt.Fprint(out, renderTSV(headers, rows))
				return err
			}
			fmt.Fprintln(out, renderTable(headers, rows, nil))
			fmt.Fprintf(out, "%d speakers in %s\n", len(reg.Speakers), cfg.Paths.Registry)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the registry JSON")
	return cmd
}

func newRegistryResolveCommand(ctx *commandContext) *cobra.Command {
	var ratio int

	cmd := &cobra.Command{
		Use:   "resolve <speaker>...",
		Short: "Resolve raw speaker text against the registry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if ratio <= 0 {
				ratio = cfg.Speakers.Ratio
			}
			resolver, err := ctx.loadResolver(ratio)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(args))
			for _, raw := range args {
				res, err := resolver.Resolve(raw)
				if err != nil {
					return err
				}
				score := "-"
				if res.Match == speakers.MatchFuzzy {
					score = strconv.Itoa(res.Ratio)
				}
				rows = append(rows, []string{raw, res.Name, res.Casting, res.Match.String(), score, strings.TrimSpace(res.Canonical.Variation)})
			}
			headers := []string{"Input", "Speaker", "Casting", "Match", "Ratio", "Variation"}
			out := cmd.OutOrStdout()
			if !shouldColorize(out) {
				_, err := fmt.Fprint(out, renderTSV(headers, rows))
				return err
			}
			fmt.Fprintln(out, renderTable(headers, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}

	cmd.Flags().IntVar(&ratio, "ratio", 0, "Fuzzy match threshold 0-100 (default speakers.ratio)")
	return cmd
}
