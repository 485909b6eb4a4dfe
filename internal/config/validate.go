package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateState(); err != nil {
		return err
	}
	if err := c.validateProgress(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateState() error {
	switch c.State.Backend {
	case "sqlite", "file":
		return nil
	default:
		return fmt.Errorf("state.backend must be %q or %q, got %q", "sqlite", "file", c.State.Backend)
	}
}

func (c *Config) validateProgress() error {
	if c.Progress.Capacity <= 0 {
		return errors.New("progress.capacity must be greater than zero")
	}
	if c.Progress.ListLimit <= 0 {
		return errors.New("progress.list_limit must be greater than zero")
	}
	if c.Progress.RetentionDays < 0 {
		return errors.New("progress.retention_days must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "console", "json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
