// Package logging provides structured logging utilities for todoist-mcp.
//
// Everything is built on the standard library's slog package. The helpers
// keep attribute names consistent between the tool layer, the Todoist client
// and the audit log.
//
// Create the process logger once and pass it down:
//
//	logger, err := logging.NewLogger(os.Stderr, debug, logging.FormatText)
//	logger = logging.WithTool(logger, "todoist_add_task")
//	logger.Info("task created", logging.ResourceID(task.ID))
//
// The API token is never logged; use SanitizeToken when its presence matters.
package logging
