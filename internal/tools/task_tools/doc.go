// Package task_tools implements the task-facing MCP tools: listing,
// searching, temporal queries (due today, overdue), creation, update,
// batch delete and batch complete, plus an explicit snapshot sync.
//
// Write tools are only registered when the server runs in read-write
// mode. Dates are accepted as wall-clock strings ("YYYY-MM-DD HH:MM:SS")
// and interpreted in the account time zone unless the caller supplies a
// timezone argument.
package task_tools
