// Package batch provides common utilities for batch operations across MCP tools.
//
// This package includes helpers for:
//   - Parsing id parameters that accept a single value, an array, or a
//     JSON-stringified array
//   - Formatting per-item batch results in a consistent structure
//   - Processing batches with partial-failure semantics, where one failing
//     task never aborts the rest
package batch
