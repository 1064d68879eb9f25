// Package logging provides structured logging utilities for the tickdone application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Token sanitization for credential-adjacent log lines
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "tasks.create")
//	logger.Info("task created",
//	    logging.TaskID(task.ID),
//	    logging.Status(logging.StatusSuccess))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("using access token",
//	    "token", logging.SanitizeToken(token))
//
// Access tokens are never logged directly; SanitizeToken reduces them to a
// length indicator.
package logging
