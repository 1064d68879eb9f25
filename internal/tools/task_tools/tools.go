package task_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ticktools/tickdone/internal/instrumentation"
	"github.com/ticktools/tickdone/internal/server"
	"github.com/ticktools/tickdone/internal/tools/common"
)

// getStringArg extracts an optional string argument, returning "" when
// absent or not a string.
func getStringArg(args map[string]interface{}, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

// getIntArg extracts an optional integer argument. JSON numbers arrive
// as float64, so both shapes are accepted.
func getIntArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// getBoolArg extracts an optional boolean argument, defaulting to false.
func getBoolArg(args map[string]interface{}, name string) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return false
}

// RegisterTaskTools registers all task-related tools with the MCP server
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerReadTools(s, sc); err != nil {
		return fmt.Errorf("failed to register task read tools: %w", err)
	}

	if !readOnly {
		if err := registerWriteTools(s, sc); err != nil {
			return fmt.Errorf("failed to register task write tools: %w", err)
		}
	}

	return nil
}

func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List tasks tool
	getTasksTool := mcp.NewTool("ticktick_get_tasks",
		mcp.WithDescription("Get all tasks from the local snapshot. Completed tasks are excluded unless include_completed is set."),
		mcp.WithBoolean("include_completed",
			mcp.Description("Include completed tasks in the result (default: false)"),
		),
	)

	s.AddTool(getTasksTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_get_tasks", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTasks(ctx, request, sc)
		}))

	// Search tool
	searchTasksTool := mcp.NewTool("ticktick_search_tasks",
		mcp.WithDescription("Search tasks by keyword. Matches title and content case-insensitively; completed tasks are included."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search keyword"),
		),
	)

	s.AddTool(searchTasksTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_search_tasks", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchTasks(ctx, request, sc)
		}))

	// Priority filter tool
	byPriorityTool := mcp.NewTool("ticktick_get_tasks_by_priority",
		mcp.WithDescription("Get active tasks with the given priority level (0=None, 1=Low, 3=Medium, 5=High)"),
		mcp.WithNumber("priority",
			mcp.Required(),
			mcp.Description("Priority level: 0, 1, 3 or 5"),
		),
	)

	s.AddTool(byPriorityTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_get_tasks_by_priority", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTasksByPriority(ctx, request, sc)
		}))

	// Due today tool
	dueTodayTool := mcp.NewTool("ticktick_get_tasks_due_today",
		mcp.WithDescription("Get active tasks due today, evaluated in the account time zone"),
	)

	s.AddTool(dueTodayTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_get_tasks_due_today", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTasksDueToday(ctx, request, sc)
		}))

	// Overdue tool
	overdueTool := mcp.NewTool("ticktick_get_overdue_tasks",
		mcp.WithDescription("Get active tasks whose due date has passed"),
	)

	s.AddTool(overdueTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_get_overdue_tasks", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetOverdueTasks(ctx, request, sc)
		}))

	// Sync tool: refreshes the snapshot, never mutates remote state
	syncTool := mcp.NewTool("ticktick_sync",
		mcp.WithDescription("Refresh the local task and project snapshot from TickTick"),
	)

	s.AddTool(syncTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_sync", instrumentation.OperationSync, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSync(ctx, request, sc)
		}))

	return nil
}

func handleGetTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	includeCompleted := getBoolArg(args, "include_completed")

	tasks := sc.Service().ListTasks(ctx, includeCompleted)

	result, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleSearchTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := getStringArg(args, "query")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	tasks := sc.Service().SearchTasks(ctx, query)

	result, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetTasksByPriority(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	priority, ok := getIntArg(args, "priority")
	if !ok {
		return mcp.NewToolResultError("priority is required"), nil
	}

	tasks := sc.Service().TasksByPriority(ctx, priority)

	result, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetTasksDueToday(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	tasks := sc.Service().TasksDueToday(ctx)

	result, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetOverdueTasks(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	tasks := sc.Service().OverdueTasks(ctx)

	result, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleSync(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if err := sc.Service().Sync(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to sync: %v", err)), nil
	}

	summary := struct {
		Status   string `json:"status"`
		Tasks    int    `json:"tasks"`
		Projects int    `json:"projects"`
	}{
		Status:   "ok",
		Tasks:    len(sc.Service().ListTasks(ctx, true)),
		Projects: len(sc.Service().Projects(ctx)),
	}

	result, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}
