package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSpeakers()
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if c.Paths.Registry == "" {
		if value, ok := os.LookupEnv("ADRTOOLS_REGISTRY"); ok {
			c.Paths.Registry = strings.TrimSpace(value)
		}
	}
	if value, ok := os.LookupEnv("ADRTOOLS_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}

	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.Registry, err = expandPath(strings.TrimSpace(c.Paths.Registry)); err != nil {
		return fmt.Errorf("paths.registry: %w", err)
	}
	if c.Paths.HeaderSchema, err = expandPath(strings.TrimSpace(c.Paths.HeaderSchema)); err != nil {
		return fmt.Errorf("paths.header_schema: %w", err)
	}
	return nil
}

func (c *Config) normalizeSpeakers() {
	excluded := make([]string, 0, len(c.Speakers.ExcludeFromMerge))
	for _, name := range c.Speakers.ExcludeFromMerge {
		if name = strings.TrimSpace(name); name != "" {
			excluded = append(excluded, name)
		}
	}
	c.Speakers.ExcludeFromMerge = excluded
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultWorkers
	}
	if cpus := runtime.NumCPU(); c.Batch.Workers > cpus {
		c.Batch.Workers = cpus
	}
	c.Batch.ScriptExtension = normalizeExtension(c.Batch.ScriptExtension, defaultScriptExtension)
	c.Batch.CueExtension = normalizeExtension(c.Batch.CueExtension, defaultCueExtension)
}

func normalizeExtension(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if !strings.HasPrefix(value, ".") {
		value = "." + value
	}
	return value
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
