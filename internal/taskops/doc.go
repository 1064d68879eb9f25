// Package taskops normalizes task and project operations against the
// TickTick client and enriches read results for display.
//
// Writes (Create, Update, Delete, Complete) inject timezone-correct
// date encodings and absorb the remote delete endpoint's inconsistent
// id-versus-object argument shapes behind an idempotent fallback chain.
// Reads (ListTasks, SearchTasks, TasksByPriority, TasksDueToday,
// OverdueTasks) are served from the client's cached snapshot, never
// fail, and convert every date field to local wall-clock form before
// returning.
//
// Failure policy: update and complete surface ErrNotFound for missing
// targets; delete treats absence as success; malformed caller-supplied
// dates are rejected with ErrMalformedDate before any remote call; all
// other write failures propagate wrapped. The service is stateless
// between calls and provides no cross-call coordination; concurrent
// writers race with last-sync-wins semantics, and staleness is resolved
// only by an explicit Sync.
package taskops
