package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"adrtools/internal/faults"
	"adrtools/internal/logging"
)

// LockName is the lock file created inside a locked output directory.
const LockName = ".adrtools.lock"

// Task processes one input file.
type Task func(ctx context.Context, path string) error

// Options configures a batch run.
type Options struct {
	Workers int
	// LockDir, when set, is locked exclusively for the duration of the run.
	LockDir string
	// RunID tags every log line; a random id is generated when empty.
	RunID  string
	Logger *slog.Logger
}

// Result is the outcome of one file.
type Result struct {
	Path     string
	Worker   int
	Err      error
	Duration time.Duration
}

// Summary collects the results of every worker.
type Summary struct {
	RunID   string
	Results []Result
}

// Failed returns the results that carry an error.
func (s Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Succeeded counts files processed without error.
func (s Summary) Succeeded() int {
	return len(s.Results) - len(s.Failed())
}

// Run partitions paths across workers and blocks until all of them finish.
// Per-file errors never fail the run; the returned error covers only the
// output lock.
func Run(ctx context.Context, paths []string, opts Options, task Task) (Summary, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	summary := Summary{RunID: runID}
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.NewComponentLogger(opts.Logger, "batch")

	if opts.LockDir != "" {
		lockPath := filepath.Join(opts.LockDir, LockName)
		lock := flock.New(lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return summary, faults.Wrap(faults.ErrConfiguration, "batch", "lock output", lockPath, err)
		}
		if !ok {
			return summary, faults.Wrap(faults.ErrConfiguration, "batch", "lock output", fmt.Sprintf("another adrtools run is writing to %s", opts.LockDir), nil)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release output lock", logging.String("lock", lockPath), logging.Error(err))
			}
		}()
	}

	groups := Partition(paths, opts.Workers)
	logging.WithContext(ctx, logger).Info("batch started",
		logging.Int("files", len(paths)),
		logging.Int("workers", len(groups)),
	)

	results := make([][]Result, len(groups))
	var wg sync.WaitGroup
	for i, group := range groups {
		wg.Add(1)
		go func(worker int, files []string) {
			defer wg.Done()
			results[worker-1] = runWorker(logging.WithWorker(ctx, worker), worker, files, logger, task)
		}(i+1, group)
	}
	wg.Wait()

	for _, rs := range results {
		summary.Results = append(summary.Results, rs...)
	}
	logging.WithContext(ctx, logger).Info("batch finished",
		logging.Int("succeeded", summary.Succeeded()),
		logging.Int("failed", len(summary.Failed())),
	)
	return summary, nil
}

func runWorker(ctx context.Context, worker int, files []string, logger *slog.Logger, task Task) []Result {
	out := make([]Result, 0, len(files))
	for _, path := range files {
		fileCtx := logging.WithFile(ctx, path)
		fileLogger := logging.WithContext(fileCtx, logger)
		started := time.Now()
		err := runTask(fileCtx, path, task)
		out = append(out, Result{Path: path, Worker: worker, Err: err, Duration: time.Since(started)})
		if err == nil {
			fileLogger.Debug("file complete", logging.Duration("elapsed", time.Since(started)))
			continue
		}
		logging.ErrorWithContext(fileLogger, "file failed", faults.Kind(err),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		if !faults.Recoverable(err) {
			logging.ErrorWithContext(fileLogger, "worker stopped", "configuration",
				logging.Int("skipped", len(files)-len(out)),
			)
			break
		}
	}
	return out
}

// runTask converts a panic in task into an error so one bad file cannot take
// down the other workers.
func runTask(ctx context.Context, path string, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = faults.Wrap(faults.ErrValidation, "batch", "process", fmt.Sprintf("panic: %v", r), nil)
		}
	}()
	return task(ctx, path)
}

func hintFor(err error) string {
	switch faults.Kind(err) {
	case "row_parse":
		return "check the file's header row and timecode columns"
	case "variation_mismatch":
		return "the speaker looks like a delivery variation but no phrase strips it; fix the speaker cell"
	case "configuration":
		return "check paths and the casting registry"
	default:
		return "check logs for details"
	}
}
