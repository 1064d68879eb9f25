package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ticktools/tickdone/internal/instrumentation"
	"github.com/ticktools/tickdone/internal/server"
)

// ToolHandler is the handler signature expected by the MCP server.
type ToolHandler = mcpserver.ToolHandlerFunc

// InstrumentedToolHandler wraps a tool handler with metrics and audit logging.
// Task and project identifiers are picked up from the request arguments when
// present so audit records can be correlated with TickTick objects.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return instrumented(toolName, "", sc, handler)
}

// InstrumentedToolHandlerWithOperation is like InstrumentedToolHandler but
// also records the TickTick operation type, feeding the per-operation API
// metrics alongside the per-tool ones.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithOperation("my_tool", instrumentation.OperationCreate, sc, handler))
func InstrumentedToolHandlerWithOperation(toolName, operation string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return instrumented(toolName, operation, sc, handler)
}

func instrumented(toolName, operation string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		// Nothing configured, skip the bookkeeping entirely
		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)
		if operation != "" {
			invocation.WithOperation(operation)
		}

		args := request.GetArguments()
		taskID := firstStringArg(args, "task_id", "id")
		if taskID != "" {
			invocation.WithTask(taskID)
		}
		projectID := firstStringArg(args, "project_id")
		if projectID != "" {
			invocation.WithProject(projectID)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				invocation.CompleteWithError(err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			if projectID != "" {
				metrics.RecordToolInvocationWithProject(ctx, toolName, status, projectID, duration)
			} else {
				metrics.RecordToolInvocation(ctx, toolName, status, duration)
			}
			if operation != "" {
				metrics.RecordAPIOperation(ctx, operation, status, duration)
			}
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}

// firstStringArg returns the first non-empty string value among the named
// arguments. Array-valued arguments are skipped; batch tools report their
// per-item identifiers in the result payload instead.
func firstStringArg(args map[string]interface{}, names ...string) string {
	for _, name := range names {
		if v, ok := args[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
