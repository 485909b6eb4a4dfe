package testsupport

import (
	"path/filepath"
	"testing"

	"playhead/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithBackend overrides the state backend on the test config.
func WithBackend(backend string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.State.Backend = backend
	}
}

// WithCapacity overrides the progress capacity on the test config.
func WithCapacity(capacity int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Progress.Capacity = capacity
	}
}

// WithRetentionDays overrides the retention window on the test config.
func WithRetentionDays(days int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Progress.RetentionDays = days
	}
}
