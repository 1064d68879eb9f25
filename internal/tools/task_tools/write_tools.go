package task_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ticktools/tickdone/internal/instrumentation"
	"github.com/ticktools/tickdone/internal/server"
	"github.com/ticktools/tickdone/internal/taskops"
	"github.com/ticktools/tickdone/internal/tools/batch"
	"github.com/ticktools/tickdone/internal/tools/common"
)

func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Create task tool
	createTaskTool := mcp.NewTool("ticktick_create_task",
		mcp.WithDescription("Create a new task. Dates are wall-clock strings in 'YYYY-MM-DD HH:MM:SS' format, interpreted in the account time zone unless timezone is given."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The task title"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project to create the task in (default: inbox)"),
		),
		mcp.WithString("content",
			mcp.Description("Task content/description"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date, 'YYYY-MM-DD HH:MM:SS' (24-hour format)"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date, 'YYYY-MM-DD HH:MM:SS' (24-hour format)"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority level: 0=None, 1=Low, 3=Medium, 5=High (default: 0)"),
		),
		mcp.WithString("timezone",
			mcp.Description("IANA time zone for interpreting the dates (default: account time zone)"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_create_task", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateTask(ctx, request, sc)
		}))

	// Update task tool
	updateTaskTool := mcp.NewTool("ticktick_update_task",
		mcp.WithDescription("Update an existing task. Only the supplied fields change; supplying either date re-encodes both in the write time zone."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to update"),
		),
		mcp.WithString("project_id",
			mcp.Description("New project ID"),
		),
		mcp.WithString("title",
			mcp.Description("New task title"),
		),
		mcp.WithString("content",
			mcp.Description("New task content/description"),
		),
		mcp.WithString("start_date",
			mcp.Description("New start date, 'YYYY-MM-DD HH:MM:SS'. Empty string clears the date."),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date, 'YYYY-MM-DD HH:MM:SS'. Empty string clears the date."),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority level: 0=None, 1=Low, 3=Medium, 5=High"),
		),
		mcp.WithString("timezone",
			mcp.Description("IANA time zone for interpreting the dates (default: account time zone)"),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_update_task", instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateTask(ctx, request, sc)
		}))

	// Delete tasks tool (single id or batch)
	deleteTasksTool := mcp.NewTool("ticktick_delete_tasks",
		mcp.WithDescription("Delete one or more tasks by ID. Deleting a task that no longer exists succeeds. Accepts a single ID or an array of IDs."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID or array of task IDs to delete"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project ID of the tasks, used to address the delete precisely"),
		),
	)

	s.AddTool(deleteTasksTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_delete_tasks", instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteTasks(ctx, request, sc)
		}))

	// Complete tasks tool (single id or batch)
	completeTasksTool := mcp.NewTool("ticktick_complete_tasks",
		mcp.WithDescription("Mark one or more tasks as completed. Accepts a single ID or an array of IDs."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID or array of task IDs to complete"),
		),
	)

	s.AddTool(completeTasksTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_complete_tasks", instrumentation.OperationComplete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCompleteTasks(ctx, request, sc)
		}))

	return nil
}

func handleCreateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title := getStringArg(args, "title")
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	in := taskops.CreateInput{
		Title:     title,
		ProjectID: getStringArg(args, "project_id"),
		Content:   getStringArg(args, "content"),
		StartDate: getStringArg(args, "start_date"),
		DueDate:   getStringArg(args, "due_date"),
		ZoneName:  getStringArg(args, "timezone"),
	}
	if priority, ok := getIntArg(args, "priority"); ok {
		in.Priority = priority
	}

	task, err := sc.Service().Create(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
	}

	result, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleUpdateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskID := getStringArg(args, "task_id")
	if taskID == "" {
		return mcp.NewToolResultError("task_id is required"), nil
	}

	in := taskops.UpdateInput{
		ID:       taskID,
		ZoneName: getStringArg(args, "timezone"),
	}

	// Presence in the arguments map decides whether a field changes, so
	// an explicit empty string clears a date while omission leaves it.
	if v, ok := args["project_id"].(string); ok {
		in.ProjectID = &v
	}
	if v, ok := args["title"].(string); ok {
		in.Title = &v
	}
	if v, ok := args["content"].(string); ok {
		in.Content = &v
	}
	if v, ok := args["start_date"].(string); ok {
		in.StartDate = &v
	}
	if v, ok := args["due_date"].(string); ok {
		in.DueDate = &v
	}
	if priority, ok := getIntArg(args, "priority"); ok {
		in.Priority = &priority
	}

	task, err := sc.Service().Update(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
	}

	result, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleDeleteTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskIDs, err := batch.ParseStringOrArray(args["task_id"], "task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	projectID := getStringArg(args, "project_id")

	results := batch.ProcessBatch(taskIDs, func(taskID string) (string, error) {
		if _, err := sc.Service().Delete(ctx, taskID, projectID); err != nil {
			return "", err
		}
		return "Task deleted", nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleCompleteTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	taskIDs, err := batch.ParseStringOrArray(args["task_id"], "task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(taskIDs, func(taskID string) (string, error) {
		if _, err := sc.Service().Complete(ctx, taskID); err != nil {
			return "", err
		}
		return "Task completed", nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
