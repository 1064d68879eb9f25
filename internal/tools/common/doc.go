// Package common provides shared utilities for MCP tool implementations.
// It wraps tool handlers with metrics recording and audit logging so the
// individual tool packages stay free of instrumentation plumbing.
package common
