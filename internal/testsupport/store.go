package testsupport

import (
	"testing"
	"time"

	"playhead/internal/config"
	"playhead/internal/logging"
	"playhead/internal/progress"
	"playhead/internal/statestore"
)

// MustOpenBackend opens the persistence backend selected by cfg and registers
// cleanup.
func MustOpenBackend(t testing.TB, cfg *config.Config) statestore.Backend {
	t.Helper()

	backend, err := statestore.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("statestore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = backend.Close()
	})
	return backend
}

// MustOpenStore builds a progress store over the configured backend.
func MustOpenStore(t testing.TB, cfg *config.Config, opts ...progress.Option) *progress.Store {
	t.Helper()

	backend := MustOpenBackend(t, cfg)
	storeOpts := []progress.Option{
		progress.WithCapacity(cfg.Progress.Capacity),
	}
	if cfg.Progress.RetentionDays > 0 {
		storeOpts = append(storeOpts, progress.WithRetention(time.Duration(cfg.Progress.RetentionDays)*24*time.Hour))
	}
	storeOpts = append(storeOpts, opts...)
	return progress.NewStore(backend, logging.NewNop(), storeOpts...)
}
