package statestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"playhead/internal/logging"
	"playhead/internal/progress"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear the database to adopt the new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// SQLiteStore persists the record collection in a SQLite database, one row
// per record.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// OpenSQLite initializes or connects to the progress database.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLiteStore{
		db:     db,
		path:   path,
		logger: logging.NewComponentLogger(logger, "statestore"),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const recordColumns = "item_id, filename, position, duration, last_activity, title, media_kind, image_url, track_index, track_filename, track_position"

// Load reads the full record collection in insertion order.
func (s *SQLiteStore) Load() ([]progress.Record, error) {
	rows, err := s.db.Query(`SELECT ` + recordColumns + ` FROM progress_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query progress records: %w", err)
	}
	defer rows.Close()

	var records []progress.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("loaded progress state",
		logging.Int("record_count", len(records)),
		logging.String("path", s.path))
	return records, nil
}

// Store replaces the persisted collection in one transaction, preserving the
// collection's order so Load returns records as they were inserted.
func (s *SQLiteStore) Store(records []progress.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin state tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM progress_records`); err != nil {
		return fmt.Errorf("clear progress records: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO progress_records (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.ItemID,
			rec.Filename,
			rec.CurrentTime,
			rec.Duration,
			rec.LastActivity.UTC().Format(time.RFC3339Nano),
			nullableString(rec.Title),
			string(rec.Kind),
			nullableString(rec.ImageURL),
			nullableInt(rec.TrackIndex),
			nullableStringPtr(rec.TrackFilename),
			nullableFloat(rec.TrackCurrentTime),
		); err != nil {
			return fmt.Errorf("insert progress record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit state tx: %w", err)
	}
	return nil
}

// DatabaseHealth captures diagnostic information about the progress database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	IntegrityCheck   bool
	TotalRecords     int
	Error            string
}

// CheckHealth returns diagnostic information about the progress database.
func (s *SQLiteStore) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("progress database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat progress database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("progress database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("progress database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping progress database: %w", err)
	}
	health.DatabaseReadable = true

	var tableName string
	row := s.db.QueryRowContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'progress_records'")
	if err := row.Scan(&tableName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			health.TableExists = false
		} else {
			health.Error = err.Error()
			return health, fmt.Errorf("query table info: %w", err)
		}
	} else {
		health.TableExists = true
	}

	if health.TableExists {
		row = s.db.QueryRowContext(connCtx, "SELECT COUNT(*) FROM progress_records")
		if err := row.Scan(&health.TotalRecords); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("count progress records: %w", err)
		}
	}

	row = s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'playhead clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *SQLiteStore) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (progress.Record, error) {
	var (
		itemID        string
		filename      string
		position      float64
		duration      float64
		lastRaw       string
		title         sql.NullString
		mediaKind     string
		imageURL      sql.NullString
		trackIndex    sql.NullInt64
		trackFilename sql.NullString
		trackPosition sql.NullFloat64
	)

	if err := scanner.Scan(
		&itemID,
		&filename,
		&position,
		&duration,
		&lastRaw,
		&title,
		&mediaKind,
		&imageURL,
		&trackIndex,
		&trackFilename,
		&trackPosition,
	); err != nil {
		return progress.Record{}, err
	}

	rec := progress.Record{
		ItemID:      itemID,
		Filename:    filename,
		CurrentTime: position,
		Duration:    duration,
		Title:       title.String,
		Kind:        progress.MediaKind(mediaKind),
		ImageURL:    imageURL.String,
	}
	if parsed, err := parseTimeString(lastRaw); err == nil {
		rec.LastActivity = parsed
	}
	if trackIndex.Valid {
		idx := int(trackIndex.Int64)
		rec.TrackIndex = &idx
	}
	if trackFilename.Valid {
		name := trackFilename.String
		rec.TrackFilename = &name
	}
	if trackPosition.Valid {
		pos := trackPosition.Float64
		rec.TrackCurrentTime = &pos
	}
	return rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableStringPtr(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return int64(*value)
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
