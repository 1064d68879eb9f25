package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ticktools/tickdone/internal/instrumentation"
	"github.com/ticktools/tickdone/internal/taskops"
	"github.com/ticktools/tickdone/internal/ticktick"
)

// Config holds the settings needed to build a ServerContext.
type Config struct {
	// AccessToken is the TickTick session token used for all API calls.
	AccessToken string

	// FallbackZone names the time zone used when the account preference
	// cannot be resolved. Empty selects the built-in default.
	FallbackZone string

	// BaseURL overrides the TickTick API endpoint. Empty uses production.
	BaseURL string

	// Logger receives structured logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// ServerContext holds the shared state for the MCP server. Tool handlers
// receive it explicitly rather than reaching for package globals, so tests
// can construct one around a stub client.
type ServerContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	client  *ticktick.Client
	service *taskops.Service

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a server context with a live TickTick client.
func NewServerContext(ctx context.Context, cfg Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clientOpts := []ticktick.Option{ticktick.WithLogger(logger)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, ticktick.WithBaseURL(cfg.BaseURL))
	}

	client, err := ticktick.NewClient(shutdownCtx, cfg.AccessToken, clientOpts...)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create TickTick client: %w", err)
	}

	serviceOpts := []taskops.ServiceOption{taskops.WithLogger(logger)}
	if cfg.FallbackZone != "" {
		serviceOpts = append(serviceOpts, taskops.WithFallbackZone(cfg.FallbackZone))
	}

	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		client:  client,
		service: taskops.NewService(client, serviceOpts...),
	}, nil
}

// NewServerContextWithService creates a server context around an existing
// service. Used by tests to substitute a fake client.
func NewServerContextWithService(ctx context.Context, service *taskops.Service) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		service: service,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the underlying TickTick client. May be nil when the
// context was built around a fake service.
func (sc *ServerContext) Client() *ticktick.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.client
}

// Service returns the task operations service.
func (sc *ServerContext) Service() *taskops.Service {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.service
}

// SetMetrics attaches a metrics recorder used by instrumented tool handlers.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger attaches an audit logger for tool invocations.
func (sc *ServerContext) SetAuditLogger(a *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = a
}

// AuditLogger returns the audit logger, or nil when auditing is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
