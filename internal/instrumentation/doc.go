// Package instrumentation provides comprehensive OpenTelemetry instrumentation
// for the tickdone MCP server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests, TickTick API calls, and snapshot syncs
//   - Distributed tracing for request flows and API calls
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_sessions: Gauge of active user sessions
//
// TickTick API Metrics:
//   - ticktick_api_operations_total: Counter of API operations by operation, status
//   - ticktick_api_operation_duration_seconds: Histogram of API operation durations
//
// Snapshot Sync Metrics:
//   - ticktick_sync_total: Counter of full-state syncs by result
//   - ticktick_snapshot_tasks: Gauge of tasks in the cached snapshot
//   - ticktick_snapshot_projects: Gauge of projects in the cached snapshot
//
// Delete Fallback Metrics:
//   - task_delete_fallback_total: Counter of deletes that reached a fallback stage
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - HTTP request handling
//   - MCP tool invocations (tool.<name>)
//   - TickTick API calls (ticktick.<operation>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: tickdone)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "tickdone",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record an HTTP request
//	recorder.RecordHTTPRequest(ctx, "POST", "/mcp", 200, time.Since(start))
//
//	// Record a TickTick API operation
//	recorder.RecordAPIOperation(ctx, "sync", "success", time.Since(start))
//
//	// Record an MCP tool invocation
//	recorder.RecordToolInvocation(ctx, "ticktick_get_tasks", "success", time.Since(start))
package instrumentation
