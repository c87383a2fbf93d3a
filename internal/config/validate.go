package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validateSpeakers(); err != nil {
		return err
	}
	if err := c.validateDensity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTiming() error {
	if c.Timing.FrameRate <= 0 {
		return errors.New("timing.frame_rate must be positive")
	}
	if c.Timing.IdealSeconds <= 0 {
		return errors.New("timing.ideal_seconds must be positive")
	}
	if c.Timing.MaxSeconds < c.Timing.IdealSeconds {
		return errors.New("timing.max_seconds must be at least timing.ideal_seconds")
	}
	if c.Timing.MaxGapTicks < 0 {
		return errors.New("timing.max_gap_ticks must be non-negative")
	}
	return nil
}

func (c *Config) validateSpeakers() error {
	if c.Speakers.Ratio < 0 || c.Speakers.Ratio > 100 {
		return errors.New("speakers.ratio must be between 0 and 100")
	}
	if c.Speakers.SplitRatio < 0 || c.Speakers.SplitRatio > 100 {
		return errors.New("speakers.split_ratio must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateDensity() error {
	if c.Density.Windows <= 0 {
		return errors.New("density.windows must be positive")
	}
	if c.Density.RuntimeSeconds < 0 {
		return errors.New("density.runtime_seconds must be non-negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

// RequireRegistry checks that the casting registry file exists. Commands that
// resolve speakers call it before touching any input.
func (c *Config) RequireRegistry() error {
	path := strings.TrimSpace(c.Paths.Registry)
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("paths.registry is required. Set ADRTOOLS_REGISTRY, pass --registry, or edit %s (create with 'adrtools config init')", defaultPath)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("paths.registry: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("paths.registry: %s is a directory", path)
	}
	return nil
}

// RequireOutputDir checks that the output directory exists or can be created.
func (c *Config) RequireOutputDir() error {
	if err := c.EnsureOutputDir(); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	info, err := os.Stat(c.Paths.OutputDir)
	if err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("paths.output_dir: %s is not a directory", c.Paths.OutputDir)
	}
	return nil
}
