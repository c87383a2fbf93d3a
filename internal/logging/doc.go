// Package logging assembles structured slog loggers and formatting helpers used
// across adrtools commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so batch workers can tag log
// lines with the run id, worker number and input file. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
