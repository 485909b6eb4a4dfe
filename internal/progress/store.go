package progress

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"playhead/internal/logging"
)

// DefaultCapacity bounds the record collection when no override is supplied.
const DefaultCapacity = 50

// DefaultListLimit is the continue-watching/listening list length used when a
// caller passes a non-positive limit.
const DefaultListLimit = 20

// Persistence is the durable-storage collaborator. Implementations load the
// prior collection at startup and receive the full collection after every
// mutation. The store never interprets persistence failures as fatal.
type Persistence interface {
	Load() ([]Record, error)
	Store([]Record) error
}

// Store owns the progress record collection and enforces its invariants.
// All methods are safe for concurrent use; mutations and reads serialize on
// one mutex so callers observe a consistent snapshot.
type Store struct {
	mu        sync.Mutex
	records   []Record
	persist   Persistence
	logger    *slog.Logger
	now       func() time.Time
	capacity  int
	retention time.Duration
}

// Option customizes store construction.
type Option func(*Store)

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCapacity overrides the record capacity bound.
func WithCapacity(capacity int) Option {
	return func(s *Store) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithRetention enables age-based expiry of records older than window at
// prune time. A zero window disables expiry.
func WithRetention(window time.Duration) Option {
	return func(s *Store) {
		if window > 0 {
			s.retention = window
		}
	}
}

// NewStore builds a store backed by persist. A nil persist keeps state in
// memory only. If the prior collection fails to load, the store starts empty;
// history is best-effort, not durable-guaranteed.
func NewStore(persist Persistence, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		persist:  persist,
		logger:   logging.NewComponentLogger(logger, "progress"),
		now:      time.Now,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}

	if persist != nil {
		records, err := persist.Load()
		if err != nil {
			s.logger.Warn("failed to load progress state",
				logging.String(logging.FieldEventType, "progress_load_failed"),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "store will start empty"))
		} else {
			s.records = records
		}
	}
	return s
}

// SaveProgress upserts a record under its (ItemID, Filename) key, stamping
// LastActivity. A complete candidate removes any existing record for the key
// instead of being stored. Persistence failures are logged, never surfaced;
// in-memory state stays authoritative.
func (s *Store) SaveProgress(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.LastActivity = s.now().UTC()
	idx := s.indexOf(rec.ItemID, rec.Filename)

	if rec.IsComplete() {
		if idx < 0 {
			return
		}
		s.records = append(s.records[:idx], s.records[idx+1:]...)
		s.logger.Debug("completed playback cleared progress",
			logging.String(logging.FieldItemID, rec.ItemID),
			logging.String("filename", rec.Filename))
		s.persistLocked()
		return
	}

	if idx >= 0 {
		s.records[idx] = rec
	} else {
		s.records = append(s.records, rec)
	}
	s.pruneLocked()
	s.persistLocked()
}

// GetProgress returns the record stored under the exact (itemID, filename)
// key. Keyed lookups skip validity filtering; callers using an exact key
// already trust it.
func (s *Store) GetProgress(itemID, filename string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(itemID, filename)
	if idx < 0 {
		return Record{}, false
	}
	return s.records[idx], true
}

// LatestProgress returns the most-recently-active record for an item across
// all of its filenames. Ties keep the earliest-inserted record.
func (s *Store) LatestProgress(itemID string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestLocked(itemID)
}

// RemoveProgress deletes the record under the exact key. Removing an absent
// key is a no-op.
func (s *Store) RemoveProgress(itemID, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(itemID, filename)
	if idx < 0 {
		return
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	s.persistLocked()
}

// RemoveItemProgress deletes every record for an item.
func (s *Store) RemoveItemProgress(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	removed := false
	for _, rec := range s.records {
		if rec.ItemID == itemID {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	if removed {
		s.persistLocked()
	}
}

// ContinueWatching returns valid video records ranked most-recent first,
// truncated to limit (DefaultListLimit when limit is non-positive).
func (s *Store) ContinueWatching(limit int) []Record {
	return s.rankedByKind(KindVideo, limit)
}

// ContinueListening returns valid audio records ranked most-recent first,
// truncated to limit (DefaultListLimit when limit is non-positive).
func (s *Store) ContinueListening(limit int) []Record {
	return s.rankedByKind(KindAudio, limit)
}

// HasResumableProgress reports whether the item's most recent record has
// meaningfully progressed into its active unit.
func (s *Store) HasResumableProgress(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.latestLocked(itemID)
	if !ok {
		return false
	}
	return rec.IsResumable()
}

// Count returns the current collection size.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Clear empties the collection and persists the empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.persistLocked()
}

func (s *Store) rankedByKind(kind MediaKind, limit int) []Record {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		if rec.Kind == kind && rec.IsValid() {
			ranked = append(ranked, rec)
		}
	}
	// Stable sort keeps insertion order for equal timestamps.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LastActivity.After(ranked[j].LastActivity)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *Store) latestLocked(itemID string) (Record, bool) {
	var latest Record
	found := false
	for _, rec := range s.records {
		if rec.ItemID != itemID {
			continue
		}
		if !found || rec.LastActivity.After(latest.LastActivity) {
			latest = rec
			found = true
		}
	}
	return latest, found
}

func (s *Store) indexOf(itemID, filename string) int {
	for i, rec := range s.records {
		if rec.ItemID == itemID && rec.Filename == filename {
			return i
		}
	}
	return -1
}

// pruneLocked enforces the optional retention window, then the capacity
// bound, evicting least-recently-active records first.
func (s *Store) pruneLocked() {
	if s.retention > 0 {
		cutoff := s.now().UTC().Add(-s.retention)
		kept := s.records[:0]
		for _, rec := range s.records {
			if rec.LastActivity.Before(cutoff) {
				continue
			}
			kept = append(kept, rec)
		}
		s.records = kept
	}

	for len(s.records) > s.capacity {
		oldest := 0
		for i, rec := range s.records {
			if rec.LastActivity.Before(s.records[oldest].LastActivity) {
				oldest = i
			}
		}
		s.records = append(s.records[:oldest], s.records[oldest+1:]...)
	}
}

func (s *Store) persistLocked() {
	if s.persist == nil {
		return
	}
	snapshot := make([]Record, len(s.records))
	copy(snapshot, s.records)
	if err := s.persist.Store(snapshot); err != nil {
		s.logger.Warn("failed to persist progress state",
			logging.String(logging.FieldEventType, "progress_persist_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "in-memory state remains authoritative"))
	}
}
