package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"adrtools/internal/media/ffprobe"
)

type runtimeReport struct {
	Path     string  `json:"path"`
	Runtime  string  `json:"runtime"`
	FPS      float64 `json:"fps"`
	Seconds  float64 `json:"seconds"`
	Duration string  `json:"duration"`
}

func newRuntimeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runtime <media>...",
		Short: "Print media runtimes as timecodes via ffprobe",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			reports := make([]runtimeReport, 0, len(args))
			for _, path := range args {
				result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
				if err != nil {
					return err
				}
				tc, err := result.Runtime(cfg.Timing.FrameRate)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				reports = append(reports, runtimeReport{
					Path:     path,
					Runtime:  tc.String(),
					FPS:      tc.FPS,
					Seconds:  tc.Seconds(),
					Duration: ffprobe.Describe(tc),
				})
			}

			if jsonOutput {
				return writeJSON(cmd, reports)
			}
			out := cmd.OutOrStdout()
			for _, r := range reports {
				fmt.Fprintf(out, "%s\t%s\t%s\n", r.Path, r.Runtime, strconv.FormatFloat(r.FPS, 'f', -1, 64))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
