package taskops

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ticktools/tickdone/internal/temporal"
	"github.com/ticktools/tickdone/internal/ticktick"
)

// Read-side aggregates are served from the client's cached snapshot and
// never fail: a partial or empty list is a safe default for a display
// operation. Every list result has its date fields converted to local
// wall-clock form (each task's own display zone) before it is returned.

// ListTasks returns all tasks, excluding completed ones unless
// includeCompleted is set.
func (s *Service) ListTasks(ctx context.Context, includeCompleted bool) []ticktick.Task {
	var out []ticktick.Task
	for _, t := range s.client.Tasks() {
		if !includeCompleted && t.IsCompleted() {
			continue
		}
		out = append(out, t)
	}
	s.logger.Debug("listed tasks", slog.Int("count", len(out)))
	return temporal.ConvertTasksTimes(out)
}

// ProjectTasks returns the tasks belonging to a project.
func (s *Service) ProjectTasks(ctx context.Context, projectID string, includeCompleted bool) []ticktick.Task {
	var out []ticktick.Task
	for _, t := range s.client.Tasks() {
		if t.ProjectID != projectID {
			continue
		}
		if !includeCompleted && t.IsCompleted() {
			continue
		}
		out = append(out, t)
	}
	return temporal.ConvertTasksTimes(out)
}

// SearchTasks returns tasks whose title or content contains the query,
// case-insensitively. Completed tasks are searched too.
func (s *Service) SearchTasks(ctx context.Context, query string) []ticktick.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []ticktick.Task
	for _, t := range s.client.Tasks() {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Content), q) {
			out = append(out, t)
		}
	}
	s.logger.Debug("searched tasks", slog.String("query", query), slog.Int("count", len(out)))
	return temporal.ConvertTasksTimes(out)
}

// TasksByPriority returns tasks with exactly the given priority.
func (s *Service) TasksByPriority(ctx context.Context, priority int) []ticktick.Task {
	var out []ticktick.Task
	for _, t := range s.client.Tasks() {
		if t.Priority == priority {
			out = append(out, t)
		}
	}
	return temporal.ConvertTasksTimes(out)
}

// TasksDueToday returns tasks whose due date falls on today's calendar
// date in the reference zone.
func (s *Service) TasksDueToday(ctx context.Context) []ticktick.Task {
	zone := s.referenceZone(ctx)
	var out []ticktick.Task
	for _, t := range s.client.Tasks() {
		if s.classifier.IsDueToday(t, zone) {
			out = append(out, t)
		}
	}
	s.logger.Debug("filtered tasks due today", slog.String("zone", zone), slog.Int("count", len(out)))
	return temporal.ConvertTasksTimes(out)
}

// OverdueTasks returns uncompleted tasks whose due date is strictly
// before today's calendar date in the reference zone.
func (s *Service) OverdueTasks(ctx context.Context) []ticktick.Task {
	zone := s.referenceZone(ctx)
	var out []ticktick.Task
	for _, t := range s.client.Tasks() {
		if s.classifier.IsOverdue(t, zone) {
			out = append(out, t)
		}
	}
	s.logger.Debug("filtered overdue tasks", slog.String("zone", zone), slog.Int("count", len(out)))
	return temporal.ConvertTasksTimes(out)
}

// Sync refreshes the client's snapshot when the client exposes a
// full-state resync; otherwise it is a no-op.
func (s *Service) Sync(ctx context.Context) error {
	if syncer, ok := s.client.(Syncer); ok {
		return syncer.Sync(ctx)
	}
	return nil
}
