package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"adrtools/internal/batch"
	"adrtools/internal/density"
	"adrtools/internal/faults"
	"adrtools/internal/fileutil"
	"adrtools/internal/media/ffprobe"
	"adrtools/internal/merge"
	"adrtools/internal/script"
	"adrtools/internal/textutil"
)

const (
	normalizedSuffix = ".gen.TAB"
	mergedSuffix     = ".merged.TAB"
	densitySuffix    = ".cuedensity.csv"
)

// produceFunc processes one input file and returns the writer for its output.
type produceFunc func(ctx context.Context, path string) (func(io.Writer) error, error)

// batchJob describes one batch command invocation.
type batchJob struct {
	stage   string
	inputs  []string
	ext     string
	suffix  string
	dryRun  bool
	produce produceFunc
}

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var startID int

	cmd := &cobra.Command{
		Use:   "normalize <path>...",
		Short: "Normalize script exports into cue files",
		Long: "Reads delimited script exports (files or directories) and writes one\n" +
			"{PROD}_{EP}" + normalizedSuffix + " cue file per input into the output directory.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			resolver, err := ctx.loadResolver(cfg.Speakers.Ratio)
			if err != nil {
				return err
			}
			schema, err := script.LoadSchema(cfg.Paths.HeaderSchema)
			if err != nil {
				return err
			}
			logger, _, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			normalizer := script.NewNormalizer(resolver, script.Options{
				FPS:     cfg.Timing.FrameRate,
				StartID: startID,
				Logger:  logger,
			})

			return ctx.runBatch(cmd, batchJob{
				stage:  "normalize",
				inputs: args,
				ext:    cfg.Batch.ScriptExtension,
				suffix: normalizedSuffix,
				dryRun: dryRun,
				produce: func(_ context.Context, path string) (func(io.Writer) error, error) {
					cues, err := normalizer.Normalize(script.NewDelimitedSource(path, schema))
					if err != nil {
						return nil, err
					}
					return func(w io.Writer) error { return script.WriteCues(w, cues) }, nil
				},
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print output to stdout instead of writing files")
	cmd.Flags().IntVar(&startID, "start-id", 0, "Id given to the first cue of each file")
	return cmd
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "merge <path>...",
		Short: "Merge normalized cues into takes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, _, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			merger := merge.New(merge.Options{
				FPS:          cfg.Timing.FrameRate,
				IdealSeconds: cfg.Timing.IdealSeconds,
				MaxSeconds:   cfg.Timing.MaxSeconds,
				MaxGapTicks:  cfg.Timing.MaxGapTicks,
				Exclude:      cfg.Speakers.ExcludeFromMerge,
				Logger:       logger,
			})

			return ctx.runBatch(cmd, batchJob{
				stage:  "merge",
				inputs: args,
				ext:    cfg.Batch.CueExtension,
				suffix: mergedSuffix,
				dryRun: dryRun,
				produce: func(_ context.Context, path string) (func(io.Writer) error, error) {
					cues, err := readCueFile(path, cfg.Timing.FrameRate)
					if err != nil {
						return nil, err
					}
					merged := merger.Merge(cues)
					return func(w io.Writer) error { return script.WriteCues(w, merged) }, nil
				},
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print output to stdout instead of writing files")
	return cmd
}

func newDensityCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun  bool
		windows int
		runtime float64
		media   string
	)

	cmd := &cobra.Command{
		Use:   "density <path>...",
		Short: "Compute cue density windows for cue files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if runtime < 0 {
				return faults.Wrap(faults.ErrConfiguration, "density", "flags", "--runtime must be non-negative", nil)
			}
			if runtime > 0 && strings.TrimSpace(media) != "" {
				return faults.Wrap(faults.ErrConfiguration, "density", "flags", "--runtime and --media are mutually exclusive", nil)
			}
			opts := density.Options{
				Windows:        cfg.Density.Windows,
				FPS:            cfg.Timing.FrameRate,
				RuntimeSeconds: cfg.Density.RuntimeSeconds,
			}
			if windows > 0 {
				opts.Windows = windows
			}
			if runtime > 0 {
				opts.RuntimeSeconds = runtime
			}
			if strings.TrimSpace(media) != "" {
				result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), media)
				if err != nil {
					return faults.Wrap(faults.ErrConfiguration, "density", "media runtime", "", err)
				}
				tc, err := result.Runtime(cfg.Timing.FrameRate)
				if err != nil {
					return faults.Wrap(faults.ErrConfiguration, "density", "media runtime", media, err)
				}
				opts.RuntimeSeconds = tc.Seconds()
			}
			analyzer := density.NewAnalyzer(opts)

			return ctx.runBatch(cmd, batchJob{
				stage:  "density",
				inputs: args,
				ext:    cfg.Batch.CueExtension,
				suffix: densitySuffix,
				dryRun: dryRun,
				produce: func(_ context.Context, path string) (func(io.Writer) error, error) {
					cues, err := readCueFile(path, cfg.Timing.FrameRate)
					if err != nil {
						return nil, err
					}
					samples := analyzer.Analyze(cues)
					return func(w io.Writer) error { return density.Write(w, samples) }, nil
				},
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print output to stdout instead of writing files")
	cmd.Flags().IntVar(&windows, "windows", 0, "Number of windows (overrides density.windows)")
	cmd.Flags().Float64Var(&runtime, "runtime", 0, "Total runtime in seconds (overrides density.runtime_seconds)")
	cmd.Flags().StringVar(&media, "media", "", "Media file whose runtime sets the total length")
	return cmd
}

// runBatch checks the output directory, discovers inputs and fans them out
// to the batch workers. Per-file failures are reported but do not fail the
// command.
func (c *commandContext) runBatch(cmd *cobra.Command, job batchJob) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !job.dryRun {
		if err := cfg.RequireOutputDir(); err != nil {
			return faults.Wrap(faults.ErrConfiguration, job.stage, "output", "", err)
		}
	}
	paths, err := batch.Discover(job.inputs, job.ext)
	if err != nil {
		return err
	}
	logger, runID, err := c.ensureLogger()
	if err != nil {
		return err
	}

	var stdoutMu sync.Mutex
	out := cmd.OutOrStdout()
	task := func(taskCtx context.Context, path string) error {
		write, err := job.produce(taskCtx, path)
		if err != nil {
			return err
		}
		name := textutil.OutputName(path, job.suffix)
		if job.dryRun {
			stdoutMu.Lock()
			defer stdoutMu.Unlock()
			if _, err := fmt.Fprintf(out, "== %s ==\n", name); err != nil {
				return err
			}
			return write(out)
		}
		return fileutil.WriteAtomic(filepath.Join(cfg.Paths.OutputDir, name), write)
	}

	lockDir := cfg.Paths.OutputDir
	if job.dryRun {
		lockDir = ""
	}
	summary, err := batch.Run(cmd.Context(), paths, batch.Options{
		Workers: cfg.Batch.Workers,
		LockDir: lockDir,
		RunID:   runID,
		Logger:  logger,
	}, task)
	if err != nil {
		return err
	}

	summaryOut := out
	if job.dryRun {
		summaryOut = cmd.ErrOrStderr()
	}
	printBatchSummary(summaryOut, summary, job.suffix)
	return nil
}

func printBatchSummary(w io.Writer, summary batch.Summary, suffix string) {
	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		status := "ok"
		detail := textutil.OutputName(result.Path, suffix)
		if result.Err != nil {
			status = faults.Kind(result.Err)
			detail = result.Err.Error()
		}
		rows = append(rows, []string{
			filepath.Base(result.Path),
			fmt.Sprintf("%d", result.Worker),
			status,
			result.Duration.Round(time.Millisecond).String(),
			detail,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"File", "Worker", "Status", "Elapsed", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	))

	colorize := shouldColorize(w)
	failed := len(summary.Failed())
	kind := statusOK
	if failed > 0 {
		kind = statusWarn
	}
	fmt.Fprintln(w, renderStatusLine("Run "+shortRunID(summary.RunID), kind,
		fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded(), failed), colorize))
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func readCueFile(path string, fps float64) ([]script.Cue, error) {
	file, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return script.ReadCues(file, fps)
}
