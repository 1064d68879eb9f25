// Package cmd implements the command-line interface for tickdone.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide TickTick task and project tools
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
