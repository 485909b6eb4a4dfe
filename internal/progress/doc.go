// Package progress records, ranks, and prunes playback positions so viewers
// can resume media where they left off.
//
// The Store keeps at most one record per (item, filename) key, bounds the
// collection by capacity with least-recently-active eviction, removes records
// instead of persisting completed playback, and serves the recency-ranked
// continue-watching and continue-listening views. In-memory state is
// authoritative; durable storage is a best-effort collaborator behind the
// Persistence interface.
//
// Treat this package as the single source of truth for resume semantics; when
// you add record fields, keep deserialization additive so older state files
// still load.
package progress
