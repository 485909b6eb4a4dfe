// Package statestore provides the durable persistence backends behind the
// progress store: a SQLite database and a flock-guarded JSON file.
//
// Both backends implement progress.Persistence by loading the full record
// collection at startup and rewriting it after every mutation. Schemas are
// additive-friendly: optional fields deserialize as absent rather than
// failing, so state written by older builds still loads.
package statestore
