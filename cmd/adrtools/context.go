package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"adrtools/internal/config"
	"adrtools/internal/faults"
	"adrtools/internal/logging"
	"adrtools/internal/speakers"
)

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	runID      string
	loggerErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies flag overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = faults.Wrap(faults.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = faults.Wrap(faults.ErrConfiguration, "config", "flags", "", err)
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if value := strings.TrimSpace(c.flags.registry); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("--registry: %w", err)
		}
		cfg.Paths.Registry = expanded
	}
	if value := strings.TrimSpace(c.flags.output); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("--output: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if c.flags.workers < 0 {
		return fmt.Errorf("--workers must be positive")
	}
	if c.flags.workers > 0 {
		cfg.Batch.Workers = c.flags.workers
	}
	if value := strings.TrimSpace(c.flags.logLevel); value != "" {
		cfg.Logging.Level = strings.ToLower(value)
	}
	return cfg.Validate()
}

// ensureLogger builds the run logger; every invocation gets a fresh run id.
func (c *commandContext) ensureLogger() (*slog.Logger, string, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.runID = uuid.NewString()
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, c.runID)
	})
	return c.logger, c.runID, c.loggerErr
}

// loadResolver checks the registry path and builds a resolver at ratio.
func (c *commandContext) loadResolver(ratio int) (*speakers.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireRegistry(); err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "registry", "locate", "", err)
	}
	reg, err := speakers.LoadRegistry(cfg.Paths.Registry)
	if err != nil {
		return nil, err
	}
	return speakers.NewResolver(reg, ratio), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
