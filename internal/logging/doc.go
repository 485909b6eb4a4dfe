// Package logging assembles structured slog loggers shared across playhead.
//
// It owns the console/JSON handler plumbing, centralizes level parsing and
// output routing, and provides attribute helpers plus a no-op logger for tests
// and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits log lines with the same shape.
package logging
