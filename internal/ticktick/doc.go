// Package ticktick provides a client for the TickTick task service.
//
// The client wraps the unofficial v2 API and provides functionality for:
//   - Maintaining a locally cached snapshot of all tasks and projects,
//     refreshed wholesale by Sync
//   - Task mutations through the batch endpoint (create, update,
//     delete by id, delete by full record, complete)
//   - Project management (create, delete, snapshot reads)
//   - Zone-aware date encoding for write payloads (TaskBuilder,
//     FormatDateForZone)
//
// # Authentication
//
// The client authenticates with a pre-issued OAuth2 access token,
// typically supplied through the TICKTICK_ACCESS_TOKEN environment
// variable. Login and token acquisition are out of scope; the token is
// wrapped in a golang.org/x/oauth2 static source so every request
// carries it.
//
// # Caching
//
// Snapshot reads (Tasks, Projects, GetByID) are served from the cached
// state and may be stale between a mutation and the next Sync. Writes
// re-sync best-effort after the mutation; a failed re-sync leaves the
// previous snapshot in place. The client never refreshes in the
// background: staleness is only resolved by an explicit Sync call.
package ticktick
