package project_tools

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

// getBoolArg extracts an optional boolean argument, defaulting to false.
func getBoolArg(args map[string]interface{}, name string) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return false
}

// RegisterProjectTools registers all project-related tools with the MCP server
func RegisterProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List projects tool
	getProjectsTool := mcp.NewTool("ticktick_get_projects",
		mcp.WithDescription("Get all projects from the local snapshot"),
	)

	s.AddTool(getProjectsTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_get_projects", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetProjects(ctx, request, sc)
		}))

	// Get project tool
	getProjectTool := mcp.NewTool("ticktick_get_project",
		mcp.WithDescription("Get details of a specific project"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project to retrieve"),
		),
	)

	s.AddTool(getProjectTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_get_project", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetProject(ctx, request, sc)
		}))

	// Project tasks tool
	projectTasksTool := mcp.NewTool("ticktick_get_project_tasks",
		mcp.WithDescription("Get tasks in a specific project. Completed tasks are excluded unless include_completed is set."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
		mcp.WithBoolean("include_completed",
			mcp.Description("Include completed tasks in the result (default: false)"),
		),
	)

	s.AddTool(projectTasksTool, common.InstrumentedToolHandlerWithOperation(
		"ticktick_get_project_tasks", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetProjectTasks(ctx, request, sc)
		}))

	if !readOnly {
		// Create project tool
		createProjectTool := mcp.NewTool("ticktick_create_project",
			mcp.WithDescription("Create a new project. Creating a project whose name already exists returns the existing project."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("The project name"),
			),
			mcp.WithString("color",
				mcp.Description("Project color as a name (red, pink, teal, green, yellow, purple, blue, mint) or hex value like '#FF6161'"),
			),
		)

		s.AddTool(createProjectTool, common.InstrumentedToolHandlerWithOperation(
			"ticktick_create_project", instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateProject(ctx, request, sc)
			}))

		// Delete project tool
		deleteProjectTool := mcp.NewTool("ticktick_delete_project",
			mcp.WithDescription("Delete a project by ID"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID of the project to delete"),
			),
		)

		s.AddTool(deleteProjectTool, common.InstrumentedToolHandlerWithOperation(
			"ticktick_delete_project", instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteProject(ctx, request, sc)
			}))
	}

	return nil
}

func handleGetProjects(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	projects := sc.Service().Projects(ctx)

	result, _ := json.MarshalIndent(projects, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetProject(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID := getStringArg(args, "project_id")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}

	project, err := sc.Service().Project(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get project: %v", err)), nil
	}

	result, _ := json.MarshalIndent(project, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetProjectTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID := getStringArg(args, "project_id")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}

	tasks := sc.Service().ProjectTasks(ctx, projectID, getBoolArg(args, "include_completed"))

	result, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateProject(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name := getStringArg(args, "name")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	project, err := sc.Service().CreateProject(ctx, name, getStringArg(args, "color"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create project: %v", err)), nil
	}

	result, _ := json.MarshalIndent(project, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleDeleteProject(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID := getStringArg(args, "project_id")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}

	if err := sc.Service().DeleteProject(ctx, projectID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete project: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Project %s deleted", projectID)), nil
}
