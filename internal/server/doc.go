// Package server provides the MCP server context, health probes, and the
// dedicated metrics endpoint for the tickdone application.
//
// # Key Components
//
// ServerContext owns the TickTick client and the task operations service
// built on top of it. Handlers receive the context explicitly; there is no
// package-level singleton, so tests can build a context around a stub
// service with NewServerContextWithService.
//
// HealthChecker exposes /healthz and /readyz handlers suitable for
// Kubernetes probes when the server runs over HTTP transport.
//
// MetricsServer serves Prometheus metrics on a separate port so that
// operational metrics are never exposed on the MCP endpoint itself.
package server
