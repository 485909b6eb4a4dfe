package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"playhead/internal/config"
	"playhead/internal/logging"
	"playhead/internal/progress"
	"playhead/internal/statestore"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerValue lazily builds the CLI logger, tagging every line with a
// per-invocation session id.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger.With(logging.String(logging.FieldSessionID, uuid.NewString()))
	})
	return c.logger
}

// withBackend opens the configured persistence backend for the duration of fn.
func (c *commandContext) withBackend(fn func(*config.Config, statestore.Backend) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	backend, err := statestore.Open(cfg, c.loggerValue())
	if err != nil {
		return fmt.Errorf("open state backend: %w", err)
	}
	defer func() { _ = backend.Close() }()
	return fn(cfg, backend)
}

// withStore builds the progress store over the configured backend for the
// duration of fn.
func (c *commandContext) withStore(fn func(*progress.Store) error) error {
	return c.withBackend(func(cfg *config.Config, backend statestore.Backend) error {
		opts := []progress.Option{progress.WithCapacity(cfg.Progress.Capacity)}
		if cfg.Progress.RetentionDays > 0 {
			opts = append(opts, progress.WithRetention(time.Duration(cfg.Progress.RetentionDays)*24*time.Hour))
		}
		store := progress.NewStore(backend, c.loggerValue(), opts...)
		return fn(store)
	})
}

func (c *commandContext) listLimit(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if c.config != nil && c.config.Progress.ListLimit > 0 {
		return c.config.Progress.ListLimit
	}
	return progress.DefaultListLimit
}
