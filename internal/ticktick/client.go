package ticktick

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/ticktools/tickdone/internal/logging"
)

// DefaultBaseURL is the endpoint of the unofficial TickTick v2 API.
const DefaultBaseURL = "https://api.ticktick.com/api/v2"

const requestTimeout = 30 * time.Second

// Client wraps the TickTick API. It holds a locally cached snapshot of
// all tasks and projects, refreshed wholesale by Sync (never
// incrementally and never in the background). Last sync wins: two
// concurrent writers mutate server-side state independently and the
// snapshot reflects whichever Sync happened most recently.
//
// Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger

	mu       sync.RWMutex
	state    State
	timeZone string
	tzLoaded bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client. Used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a TickTick client authenticated with a pre-issued
// OAuth2 access token. Interactive login flows are not handled here;
// the token must be obtained out of band.
func NewClient(ctx context.Context, accessToken string, opts ...Option) (*Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("ticktick access token is required (set TICKTICK_ACCESS_TOKEN)")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = requestTimeout

	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// syncResponse mirrors the wire shape of the full-state sync endpoint.
type syncResponse struct {
	InboxID         string    `json:"inboxId"`
	ProjectProfiles []Project `json:"projectProfiles"`
	SyncTaskBean    struct {
		Update []Task `json:"update"`
	} `json:"syncTaskBean"`
}

// Sync replaces the cached snapshot with the server's full state.
func (c *Client) Sync(ctx context.Context) error {
	var resp syncResponse
	if err := c.do(ctx, http.MethodGet, "/batch/check/0", nil, &resp); err != nil {
		return fmt.Errorf("failed to sync state: %w", err)
	}

	c.mu.Lock()
	c.state = State{
		Tasks:    resp.SyncTaskBean.Update,
		Projects: resp.ProjectProfiles,
		InboxID:  resp.InboxID,
	}
	c.mu.Unlock()

	c.logger.Debug("synced state",
		slog.Int("tasks", len(resp.SyncTaskBean.Update)),
		slog.Int("projects", len(resp.ProjectProfiles)))
	return nil
}

// Tasks returns a copy of the cached task snapshot.
func (c *Client) Tasks() []Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Task, len(c.state.Tasks))
	copy(out, c.state.Tasks)
	return out
}

// Projects returns a copy of the cached project snapshot.
func (c *Client) Projects() []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Project, len(c.state.Projects))
	copy(out, c.state.Projects)
	return out
}

// GetByID returns the cached task with the given id, or nil if the
// snapshot holds no such task.
func (c *Client) GetByID(id string) *Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.state.Tasks {
		if c.state.Tasks[i].ID == id {
			t := c.state.Tasks[i]
			return &t
		}
	}
	return nil
}

// ProjectByID returns the cached project with the given id, or nil.
func (c *Client) ProjectByID(id string) *Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.state.Projects {
		if c.state.Projects[i].ID == id {
			p := c.state.Projects[i]
			return &p
		}
	}
	return nil
}

// TimeZone returns the account-level IANA zone from the user's
// preferences, fetched once and cached. Returns "" when the preference
// is absent or the fetch fails.
func (c *Client) TimeZone(ctx context.Context) string {
	c.mu.RLock()
	if c.tzLoaded {
		tz := c.timeZone
		c.mu.RUnlock()
		return tz
	}
	c.mu.RUnlock()

	var prefs struct {
		TimeZone string `json:"timeZone"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/preferences", nil, &prefs); err != nil {
		c.logger.Warn("failed to fetch user preferences", logging.Err(err))
		return ""
	}

	c.mu.Lock()
	c.timeZone = prefs.TimeZone
	c.tzLoaded = true
	c.mu.Unlock()
	return prefs.TimeZone
}

// batchTaskRequest is the wire shape of the batch task mutation
// endpoint. Delete entries address tasks by id; the projectId is only
// honored for some backing stores (see DeleteTaskObject).
type batchTaskRequest struct {
	Add    []TaskPayload     `json:"add,omitempty"`
	Update []Task            `json:"update,omitempty"`
	Delete []batchTaskHandle `json:"delete,omitempty"`
}

type batchTaskHandle struct {
	TaskID    string `json:"taskId"`
	ProjectID string `json:"projectId,omitempty"`
}

// CreateTask submits a builder payload and returns the created task.
func (c *Client) CreateTask(ctx context.Context, payload TaskPayload) (*Task, error) {
	id := newObjectID()

	// The API assigns server-side ids when the payload carries none;
	// submitting a client-generated id keeps the created task
	// addressable before the next full sync.
	type addPayload struct {
		TaskPayload
		ID string `json:"id"`
	}
	wire := struct {
		Add []addPayload `json:"add"`
	}{Add: []addPayload{{TaskPayload: payload, ID: id}}}

	if err := c.do(ctx, http.MethodPost, "/batch/task", wire, nil); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	c.refresh(ctx)

	if t := c.GetByID(id); t != nil {
		return t, nil
	}
	// Snapshot refresh failed or lagged; return what was submitted.
	return &Task{
		ID:        id,
		ProjectID: payload.ProjectID,
		Title:     payload.Title,
		Content:   payload.Content,
		Priority:  payload.Priority,
		StartDate: payload.StartDate,
		DueDate:   payload.DueDate,
		TimeZone:  payload.TimeZone,
	}, nil
}

// UpdateTask submits a full task record for update and returns the
// updated task.
func (c *Client) UpdateTask(ctx context.Context, task Task) (*Task, error) {
	req := batchTaskRequest{Update: []Task{task}}
	if err := c.do(ctx, http.MethodPost, "/batch/task", req, nil); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}

	c.refresh(ctx)

	if t := c.GetByID(task.ID); t != nil {
		return t, nil
	}
	return &task, nil
}

// DeleteTask deletes a task addressed by bare id. Tasks absent from the
// primary index (previously completed ones in particular) may not be
// reachable through this shape; DeleteTaskObject covers those.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	req := batchTaskRequest{Delete: []batchTaskHandle{{TaskID: id}}}
	if err := c.do(ctx, http.MethodPost, "/batch/task", req, nil); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	c.refresh(ctx)
	return nil
}

// DeleteTaskObject deletes a task addressed by its full record,
// including the project id the record belongs to.
func (c *Client) DeleteTaskObject(ctx context.Context, task Task) error {
	req := batchTaskRequest{Delete: []batchTaskHandle{{TaskID: task.ID, ProjectID: task.ProjectID}}}
	if err := c.do(ctx, http.MethodPost, "/batch/task", req, nil); err != nil {
		return fmt.Errorf("failed to delete task object %s: %w", task.ID, err)
	}
	c.refresh(ctx)
	return nil
}

// CompleteTask marks a task as completed. The endpoint requires the
// complete record, not a bare id.
func (c *Client) CompleteTask(ctx context.Context, task Task) error {
	task.Status = StatusCompleted
	req := batchTaskRequest{Update: []Task{task}}
	if err := c.do(ctx, http.MethodPost, "/batch/task", req, nil); err != nil {
		return fmt.Errorf("failed to complete task %s: %w", task.ID, err)
	}
	c.refresh(ctx)
	return nil
}

// CreateProject creates a project. colorHex may be empty for the
// provider default color.
func (c *Client) CreateProject(ctx context.Context, name, colorHex string) (*Project, error) {
	id := newObjectID()
	type projectPayload struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Color    string `json:"color,omitempty"`
		ViewMode string `json:"viewMode"`
	}
	req := struct {
		Add []projectPayload `json:"add"`
	}{Add: []projectPayload{{ID: id, Name: name, Color: colorHex, ViewMode: "list"}}}

	if err := c.do(ctx, http.MethodPost, "/batch/project", req, nil); err != nil {
		return nil, fmt.Errorf("failed to create project %q: %w", name, err)
	}

	c.refresh(ctx)

	if p := c.ProjectByID(id); p != nil {
		return p, nil
	}
	return &Project{ID: id, Name: name, Color: colorHex, ViewMode: "list"}, nil
}

// DeleteProject deletes a project by id.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	req := struct {
		Delete []string `json:"delete"`
	}{Delete: []string{id}}

	if err := c.do(ctx, http.MethodPost, "/batch/project", req, nil); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	c.refresh(ctx)
	return nil
}

// refresh re-syncs the snapshot after a mutation, best-effort. A failed
// refresh leaves the previous snapshot in place; the mutation itself
// already succeeded.
func (c *Client) refresh(ctx context.Context) {
	if err := c.Sync(ctx); err != nil {
		c.logger.Warn("post-mutation sync failed, snapshot is stale", logging.Err(err))
	}
}

// do executes an API request and decodes the response into out when out
// is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// newObjectID generates a 24-character hex id in the shape the API uses
// for tasks and projects.
func newObjectID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:12])
}
