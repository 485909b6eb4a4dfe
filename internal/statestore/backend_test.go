package statestore_test

import (
	"testing"
	"time"

	"playhead/internal/logging"
	"playhead/internal/progress"
	"playhead/internal/statestore"
	"playhead/internal/testsupport"
)

func TestOpenSelectsConfiguredBackend(t *testing.T) {
	tests := []struct {
		backend string
		check   func(t *testing.T, backend statestore.Backend)
	}{
		{
			backend: "sqlite",
			check: func(t *testing.T, backend statestore.Backend) {
				if _, ok := backend.(*statestore.SQLiteStore); !ok {
					t.Fatalf("expected *SQLiteStore, got %T", backend)
				}
			},
		},
		{
			backend: "file",
			check: func(t *testing.T, backend statestore.Backend) {
				if _, ok := backend.(*statestore.FileStore); !ok {
					t.Fatalf("expected *FileStore, got %T", backend)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := testsupport.NewConfig(t, testsupport.WithBackend(tt.backend))
			backend := testsupport.MustOpenBackend(t, cfg)
			tt.check(t, backend)

			if err := backend.Store(sampleRecords()); err != nil {
				t.Fatalf("Store: %v", err)
			}
			loaded, err := backend.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			requireRecordsEqual(t, loaded, sampleRecords())
		})
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBackend("file"))
	cfg.State.Backend = "redis"

	if _, err := statestore.Open(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestStoreOverBackendSurvivesReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBackend("file"), testsupport.WithCapacity(10))

	store := testsupport.MustOpenStore(t, cfg)
	store.SaveProgress(progress.NewFileRecord("movie", "m.mp4", 600, 6000, "A Movie", "video"))

	reopened := testsupport.MustOpenStore(t, cfg)
	if _, ok := reopened.GetProgress("movie", "m.mp4"); !ok {
		t.Fatal("expected record to survive reopen")
	}
	if reopened.Count() != 1 {
		t.Fatalf("expected 1 record, got %d", reopened.Count())
	}
}

func TestConfiguredRetentionExpiresOldRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBackend("file"), testsupport.WithRetentionDays(1))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := testsupport.MustOpenStore(t, cfg, progress.WithClock(func() time.Time { return now }))
	store.SaveProgress(progress.NewFileRecord("old", "o.mp4", 600, 6000, "Old", "video"))

	later := now.Add(48 * time.Hour)
	aged := testsupport.MustOpenStore(t, cfg, progress.WithClock(func() time.Time { return later }))
	aged.SaveProgress(progress.NewFileRecord("new", "n.mp4", 600, 6000, "New", "video"))

	if _, ok := aged.GetProgress("old", "o.mp4"); ok {
		t.Fatal("expected aged-out record to be pruned")
	}
	if _, ok := aged.GetProgress("new", "n.mp4"); !ok {
		t.Fatal("expected fresh record to survive")
	}
}
