package statestore

import (
	"fmt"
	"log/slog"

	"playhead/internal/config"
	"playhead/internal/progress"
)

// Backend is a closable persistence implementation.
type Backend interface {
	progress.Persistence
	Close() error
}

// Open returns the persistence backend selected by cfg. Callers own closing
// the returned backend.
func Open(cfg *config.Config, logger *slog.Logger) (Backend, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	switch cfg.State.Backend {
	case "sqlite":
		return OpenSQLite(cfg.DatabasePath(), logger)
	case "file":
		return NewFileStore(cfg.StateFilePath(), logger), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}
