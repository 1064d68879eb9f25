package taskops

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ticktools/tickdone/internal/logging"
	"github.com/ticktools/tickdone/internal/temporal"
	"github.com/ticktools/tickdone/internal/ticktick"
)

// wallClockLayout is the format write-path callers supply dates in,
// interpreted in the write zone.
const wallClockLayout = "2006-01-02 15:04:05"

// DefaultFallbackZone is used for writes and classification when the
// account has no resolvable zone and none was configured. It preserves
// the service's historical default and is a configuration value, not a
// requirement.
const DefaultFallbackZone = "Asia/Shanghai"

// Client is the remote surface the service consumes. *ticktick.Client
// satisfies it; tests inject fakes.
type Client interface {
	Tasks() []ticktick.Task
	Projects() []ticktick.Project
	GetByID(id string) *ticktick.Task
	ProjectByID(id string) *ticktick.Project
	CreateTask(ctx context.Context, payload ticktick.TaskPayload) (*ticktick.Task, error)
	UpdateTask(ctx context.Context, task ticktick.Task) (*ticktick.Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteTaskObject(ctx context.Context, task ticktick.Task) error
	CompleteTask(ctx context.Context, task ticktick.Task) error
	CreateProject(ctx context.Context, name, colorHex string) (*ticktick.Project, error)
	DeleteProject(ctx context.Context, id string) error
	TimeZone(ctx context.Context) string
}

// Syncer is the optional full-state resync surface. Presence is checked
// before use: the delete fallback and the sync tool degrade gracefully
// when the client does not expose it.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Service normalizes task mutations against the remote client and
// enriches reads with local-time display conversion and due/overdue
// classification. It is stateless between calls apart from the client's
// own snapshot cache, and safe for concurrent use.
type Service struct {
	client       Client
	classifier   *temporal.Classifier
	fallbackZone string
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithFallbackZone overrides the zone used when the account has none.
func WithFallbackZone(zone string) ServiceOption {
	return func(s *Service) {
		if zone != "" {
			s.fallbackZone = zone
		}
	}
}

// WithClock injects a clock for deterministic classification.
func WithClock(clock temporal.Clock) ServiceOption {
	return func(s *Service) { s.classifier = temporal.NewClassifier(clock) }
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service around an explicitly passed client
// handle.
func NewService(client Client, opts ...ServiceOption) *Service {
	s := &Service{
		client:       client,
		classifier:   temporal.NewClassifier(nil),
		fallbackZone: DefaultFallbackZone,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// referenceZone resolves the zone that decides what "today" means:
// the account's configured zone if the client reports one, otherwise
// the configured fallback.
func (s *Service) referenceZone(ctx context.Context) string {
	if tz := s.client.TimeZone(ctx); tz != "" {
		return tz
	}
	return s.fallbackZone
}

// writeZone resolves the zone for date encoding on writes: an explicit
// caller override wins, otherwise the reference zone. Display zone and
// reference zone stay distinct concepts; neither is silently derived
// from the other.
func (s *Service) writeZone(ctx context.Context, override string) string {
	if override != "" {
		return override
	}
	return s.referenceZone(ctx)
}

// CreateInput carries the fields for task creation. Dates are
// wall-clock strings in "YYYY-MM-DD HH:MM:SS" form, interpreted in the
// write zone.
type CreateInput struct {
	Title     string
	ProjectID string
	Content   string
	Priority  int
	StartDate string
	DueDate   string
	// ZoneName overrides the write zone for date encoding. Empty means
	// the account zone, falling back to the configured default.
	ZoneName string
}

// Create creates a task. When either date is present the payload goes
// through the builder's zone-aware encoding; date-less tasks take the
// simplified path, since invoking the builder without a zone adds no
// value and risks spurious zone fields in the payload.
func (s *Service) Create(ctx context.Context, in CreateInput) (*ticktick.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}

	start, err := parseWallClock(in.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	due, err := parseWallClock(in.DueDate, "due_date")
	if err != nil {
		return nil, err
	}

	payload := ticktick.TaskBuilder(in.Title).
		WithProject(in.ProjectID).
		WithContent(in.Content).
		WithPriority(in.Priority)

	if start != nil || due != nil {
		zone := s.writeZone(ctx, in.ZoneName)
		payload = payload.WithDates(start, due, zone)
		s.logger.Debug("creating task with zone-encoded dates",
			slog.String("zone", zone), slog.String("title", in.Title))
	}

	task, err := s.client.CreateTask(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("created task",
		slog.String(logging.KeyTaskID, task.ID), slog.String("title", in.Title))
	converted := temporal.ConvertTaskTimes(*task)
	return &converted, nil
}

// UpdateInput carries the fields for task update. Nil pointers mean
// "leave unchanged"; explicit zero values (priority 0, empty content)
// are applied.
type UpdateInput struct {
	ID        string
	ProjectID *string
	Title     *string
	Content   *string
	StartDate *string
	DueDate   *string
	Priority  *int
	// ZoneName overrides the write zone for date re-encoding. Empty
	// means the account zone, falling back to the configured default.
	ZoneName string
}

// Update applies the supplied fields to an existing task. The task is
// fetched first and ErrNotFound surfaces if it is absent: unlike
// delete, update is not idempotent, because silently no-op'ing would
// hide a caller error. When either date is supplied, both date fields
// are re-encoded with the write zone, because the API treats start/due/zone as
// a coupled triple on write.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*ticktick.Task, error) {
	existing := s.client.GetByID(in.ID)
	if existing == nil || existing.ID == "" {
		return nil, fmt.Errorf("task %s: %w", in.ID, ErrNotFound)
	}
	task := *existing

	if in.ProjectID != nil {
		task.ProjectID = *in.ProjectID
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Content != nil {
		task.Content = *in.Content
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}

	if in.StartDate != nil || in.DueDate != nil {
		zone := s.writeZone(ctx, in.ZoneName)
		if err := s.applyDates(&task, in.StartDate, in.DueDate, zone); err != nil {
			return nil, err
		}
	}

	updated, err := s.client.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info("updated task", slog.String(logging.KeyTaskID, in.ID))
	converted := temporal.ConvertTaskTimes(*updated)
	return &converted, nil
}

// applyDates re-encodes the task's start and due dates in zone. A
// supplied date replaces the stored one; an unchanged stored date is
// re-encoded from its UTC instant so the whole triple is consistent.
func (s *Service) applyDates(task *ticktick.Task, startDate, dueDate *string, zone string) error {
	encode := func(supplied *string, stored string, field string) (string, error) {
		if supplied != nil {
			t, err := parseWallClock(*supplied, field)
			if err != nil {
				return "", err
			}
			if t == nil {
				// Explicit empty string clears the date.
				return "", nil
			}
			return ticktick.FormatDateForZone(*t, zone), nil
		}
		if stored == "" {
			return "", nil
		}
		instant, ok := temporal.NormalizeTimestamp(stored)
		if !ok {
			// A stored date we cannot parse is left untouched rather
			// than corrupted.
			return stored, nil
		}
		loc, err := time.LoadLocation(zone)
		if err != nil {
			loc = time.UTC
		}
		return ticktick.FormatDateForZone(instant.In(loc), zone), nil
	}

	start, err := encode(startDate, task.StartDate, "start_date")
	if err != nil {
		return err
	}
	due, err := encode(dueDate, task.DueDate, "due_date")
	if err != nil {
		return err
	}

	task.StartDate = start
	task.DueDate = due
	task.TimeZone = zone
	return nil
}

// Complete marks a task as completed. The completion endpoint requires
// the full record, so the task is always fetched first; a missing or
// empty record surfaces ErrNotFound and the endpoint is never called.
func (s *Service) Complete(ctx context.Context, id string) (bool, error) {
	task := s.client.GetByID(id)
	if task == nil || task.ID == "" {
		return false, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	if err := s.client.CompleteTask(ctx, *task); err != nil {
		return false, err
	}

	s.logger.Info("completed task", slog.String(logging.KeyTaskID, id))
	return true, nil
}

// parseWallClock parses an optional caller-supplied wall-clock date.
// An empty string means absent. Malformed input returns
// ErrMalformedDate so write paths can reject it before any remote call.
func parseWallClock(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(wallClockLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%s %q (expected \"YYYY-MM-DD HH:MM:SS\"): %w", field, raw, ErrMalformedDate)
	}
	return &t, nil
}
