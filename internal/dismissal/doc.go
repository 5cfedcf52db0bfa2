// Package dismissal persists the per-user dismissed-item set and ephemeral
// snoozes shared by every surface that consumes one engine result.
//
// Storage is an injected key-value capability: an in-memory implementation
// for tests and a SQLite-backed one for production. Every Store operation
// is fail-soft: a broken backend degrades to "nothing dismissed" rather
// than surfacing an error, because dismissal is a convenience, not a
// correctness requirement. Dismissing an already-dismissed id is a no-op,
// which is what makes last-write-wins acceptable for concurrent writers.
package dismissal
