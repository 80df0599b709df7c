// Package audit derives an audit trail from published events. The Recorder
// subscribes to the fabric like any other handler, maps each event to a
// Record (who did what to which entity, with what result), writes one
// structured log line per record, and optionally persists records through a
// Storage backend.
//
// Persistence is additive: the log line is always written first, so a
// storage outage degrades the trail to log-only instead of losing entries.
// MemoryStorage serves tests and development; PostgresStorage is the
// production backend.
package audit
