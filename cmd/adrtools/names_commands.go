package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"adrtools/internal/batch"
	"adrtools/internal/config"
	"adrtools/internal/faults"
	"adrtools/internal/script"
)

func newNamesCommand(ctx *commandContext) *cobra.Command {
	var split bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "names <path>...",
		Short: "List the speaker names used across script exports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows, err := loadScriptRows(cfg, args)
			if err != nil {
				return err
			}
			var all []script.Row
			for _, fileRows := range rows {
				all = append(all, fileRows.rows...)
			}
			names := script.CollectNames(all, split)
			return writeOutput(cmd.OutOrStdout(), outputPath, func(w io.Writer) error {
				for _, name := range names {
					if _, err := fmt.Fprintln(w, name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&split, "split", false, "Split speaker cells on commas and \" to \"")
	cmd.Flags().StringVar(&outputPath, "out", "", "Destination file (default stdout)")
	return cmd
}

func newLinesCommand(ctx *commandContext) *cobra.Command {
	var (
		characters []string
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "lines <path>...",
		Short: "Show example lines where a character addresses someone",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(characters) == 0 {
				return faults.Wrap(faults.ErrConfiguration, "lines", "flags", "at least one --character is required", nil)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			files, err := loadScriptRows(cfg, args)
			if err != nil {
				return err
			}
			var examples []script.LineExample
			for _, f := range files {
				examples = append(examples, script.FindLineExamples(f.path, f.rows, characters, limit)...)
			}

			if jsonOutput {
				if examples == nil {
					examples = []script.LineExample{}
				}
				return writeJSON(cmd, examples)
			}

			headers := []string{"Character", "File", "Row", "TC In", "TC Out", "Line"}
			table := make([][]string, 0, len(examples))
			for _, ex := range examples {
				table = append(table, []string{ex.Character, ex.Source, strconv.Itoa(ex.Row), ex.TCIn, ex.TCOut, ex.Line})
			}
			out := cmd.OutOrStdout()
			if !shouldColorize(out) {
				_, err := io.WriteString(out, renderTSV(headers, table))
				return err
			}
			if len(table) == 0 {
				fmt.Fprintf(out, "No lines found for %s\n", strings.Join(characters, ", "))
				return nil
			}
			fmt.Fprintln(out, renderTable(headers, table,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&characters, "character", nil, "Character to search for (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 3, "Maximum examples per character and file (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

type scriptRows struct {
	path string
	rows []script.Row
}

// loadScriptRows discovers script exports and reads their rows with the
// configured header schema.
func loadScriptRows(cfg *config.Config, inputs []string) ([]scriptRows, error) {
	schema, err := script.LoadSchema(cfg.Paths.HeaderSchema)
	if err != nil {
		return nil, err
	}
	paths, err := batch.Discover(inputs, cfg.Batch.ScriptExtension)
	if err != nil {
		return nil, err
	}
	out := make([]scriptRows, 0, len(paths))
	for _, path := range paths {
		rows, err := script.NewDelimitedSource(path, schema).Rows()
		if err != nil {
			return nil, err
		}
		out = append(out, scriptRows{path: path, rows: rows})
	}
	return out, nil
}
