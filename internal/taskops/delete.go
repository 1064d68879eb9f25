package taskops

import (
	"context"
	"log/slog"

	"github.com/ticktools/tickdone/internal/logging"
)

// The remote delete endpoint has two argument shapes (bare id and full
// task object) and undocumented, inconsistent semantics between the
// active and completed task buckets: some backing stores only honor the
// object form for tasks absent from the primary index. The fallback
// below empirically covers both without requiring the caller to know
// which bucket a task is in.
//
// The fallback policy is modeled as an explicit state machine with a
// pure transition function so it can be unit-tested without a live
// remote service.

// deleteState is a node in the delete fallback state machine.
type deleteState int

const (
	deleteStart deleteState = iota
	deletePrefetchChecked
	deleteDirectAttempted
	deleteResyncAttempted
	deleteRefetchChecked
	deleteObjectAttempted
	deleteSucceeded
	deleteFailed
)

func (s deleteState) String() string {
	switch s {
	case deleteStart:
		return "start"
	case deletePrefetchChecked:
		return "prefetch_checked"
	case deleteDirectAttempted:
		return "direct_delete_attempted"
	case deleteResyncAttempted:
		return "resync_attempted"
	case deleteRefetchChecked:
		return "refetch_checked"
	case deleteObjectAttempted:
		return "object_delete_attempted"
	case deleteSucceeded:
		return "success"
	case deleteFailed:
		return "failure"
	default:
		return "unknown"
	}
}

// deleteEvent is an observation fed into the state machine by the
// driver after performing the side effect the current state calls for.
type deleteEvent int

const (
	eventPrefetchMissing deleteEvent = iota
	eventPrefetchPresent
	eventPrefetchSkipped
	eventDirectDeleteIssued
	eventDirectDeleteOK
	eventDirectDeleteFailed
	eventResyncDone
	eventRefetchMissing
	eventRefetchPresent
	eventObjectDeleteOK
	eventObjectDeleteFailed
)

// nextDeleteState is the pure transition function of the delete
// fallback. Unknown state/event pairs collapse to deleteFailed.
func nextDeleteState(s deleteState, e deleteEvent) deleteState {
	switch s {
	case deleteStart:
		switch e {
		case eventPrefetchMissing:
			// Target already gone: the caller's goal is achieved.
			return deleteSucceeded
		case eventPrefetchPresent, eventPrefetchSkipped:
			return deletePrefetchChecked
		}
	case deletePrefetchChecked:
		if e == eventDirectDeleteIssued {
			return deleteDirectAttempted
		}
	case deleteDirectAttempted:
		switch e {
		case eventDirectDeleteOK:
			return deleteSucceeded
		case eventDirectDeleteFailed:
			return deleteResyncAttempted
		}
	case deleteResyncAttempted:
		if e == eventResyncDone {
			return deleteRefetchChecked
		}
	case deleteRefetchChecked:
		switch e {
		case eventRefetchMissing:
			return deleteSucceeded
		case eventRefetchPresent:
			return deleteObjectAttempted
		}
	case deleteObjectAttempted:
		switch e {
		case eventObjectDeleteOK:
			return deleteSucceeded
		case eventObjectDeleteFailed:
			return deleteFailed
		}
	}
	return deleteFailed
}

// Delete removes a task by id. Absence of the target at any checkpoint
// is treated as success, not an error: deletion of an already-absent
// task has already achieved the caller's goal.
//
// When projectID is empty the task is pre-fetched and a missing task
// short-circuits to success without any provider delete call. A failed
// direct delete triggers a best-effort full-state resync (when the
// client exposes one), a re-fetch, and, if the task is still present,
// a single retry using the full task object. A failure of that second
// attempt propagates; there is no further fallback.
func (s *Service) Delete(ctx context.Context, id, projectID string) (bool, error) {
	logger := s.logger.With(slog.String(logging.KeyTaskID, id))
	state := deleteStart

	// START -> PREFETCH_CHECKED | SUCCESS
	if projectID == "" {
		if s.client.GetByID(id) == nil {
			state = nextDeleteState(state, eventPrefetchMissing)
			logger.Info("task already absent, delete is a no-op")
			return true, nil
		}
		state = nextDeleteState(state, eventPrefetchPresent)
	} else {
		state = nextDeleteState(state, eventPrefetchSkipped)
	}

	// PREFETCH_CHECKED -> DIRECT_DELETE_ATTEMPTED -> SUCCESS | RESYNC_ATTEMPTED
	state = nextDeleteState(state, eventDirectDeleteIssued)
	directErr := s.client.DeleteTask(ctx, id)
	if directErr == nil {
		state = nextDeleteState(state, eventDirectDeleteOK)
		logger.Info("deleted task")
		return true, nil
	}
	state = nextDeleteState(state, eventDirectDeleteFailed)
	logger.Warn("direct delete failed, entering fallback", logging.Err(directErr))

	// RESYNC_ATTEMPTED -> REFETCH_CHECKED
	// Resync is best-effort: a resync failure does not abort the
	// fallback, it only means the refetch may see a stale snapshot.
	if syncer, ok := s.client.(Syncer); ok {
		if err := syncer.Sync(ctx); err != nil {
			logger.Warn("resync during delete fallback failed", logging.Err(err))
		}
	}
	state = nextDeleteState(state, eventResyncDone)

	// REFETCH_CHECKED -> SUCCESS | OBJECT_DELETE_ATTEMPTED
	task := s.client.GetByID(id)
	if task == nil {
		state = nextDeleteState(state, eventRefetchMissing)
		logger.Info("task gone after resync, delete is a no-op")
		return true, nil
	}
	state = nextDeleteState(state, eventRefetchPresent)

	// OBJECT_DELETE_ATTEMPTED -> SUCCESS | FAILURE
	if err := s.client.DeleteTaskObject(ctx, *task); err != nil {
		state = nextDeleteState(state, eventObjectDeleteFailed)
		logger.Error("object-form delete failed", slog.String("state", state.String()), logging.Err(err))
		return false, err
	}
	state = nextDeleteState(state, eventObjectDeleteOK)
	logger.Info("deleted task via object-form fallback", slog.String("state", state.String()))
	return true, nil
}
