// Package project_tools implements the project-facing MCP tools:
// listing, lookup, per-project task queries, creation and deletion.
//
// Project creation accepts a color by name or hex value, returns the
// existing project when the name is already taken, and retries without
// the color when the provider rejects it. Write tools are only
// registered when the server runs in read-write mode.
package project_tools
