package todoist_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

func projectTools() []toolSpec {
	viewStyle := mcp.WithString("view_style",
		mcp.Description("Project layout"),
		mcp.Enum(todoist.ViewStyleList, todoist.ViewStyleBoard, todoist.ViewStyleCalendar),
	)

	return []toolSpec{
		{
			tool:      readTool("todoist_get_projects", "List the user's projects, one page at a time", pageOptions()...),
			resource:  instrumentation.ResourceProjects,
			operation: instrumentation.OperationList,
			readOnly:  true,
			handler:   getProjects,
		},
		{
			tool: readTool("todoist_get_project", "Get a single project by ID",
				mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project")),
			),
			resource:  instrumentation.ResourceProjects,
			operation: instrumentation.OperationGet,
			readOnly:  true,
			handler:   getProject,
		},
		{
			tool: writeTool("todoist_add_project", "Create a project", false,
				mcp.WithString("name", mcp.Required(), mcp.Description("Name of the project")),
				mcp.WithString("parent_id", mcp.Description("ID of the parent project")),
				mcp.WithString("color", mcp.Description("Color name, e.g. berry_red")),
				mcp.WithBoolean("is_favorite", mcp.Description("Mark the project as favorite")),
				viewStyle,
				mcp.WithString("description", mcp.Description("Project description")),
			),
			resource:  instrumentation.ResourceProjects,
			operation: instrumentation.OperationCreate,
			handler:   addProject,
		},
		{
			tool: writeTool("todoist_update_project", "Update a project. At least one field besides project_id is required", false,
				mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project")),
				mcp.WithString("name", mcp.Description("New name")),
				mcp.WithString("color", mcp.Description("New color name")),
				mcp.WithBoolean("is_favorite", mcp.Description("Favorite flag")),
				viewStyle,
				mcp.WithString("description", mcp.Description("New description")),
			),
			resource:  instrumentation.ResourceProjects,
			operation: instrumentation.OperationUpdate,
			handler:   updateProject,
		},
		{
			tool: writeTool("todoist_delete_project", "Delete a project with all its sections and tasks", true,
				mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project")),
			),
			resource:  instrumentation.ResourceProjects,
			operation: instrumentation.OperationDelete,
			handler:   deleteProject,
		},
	}
}

func getProjects(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	opts, err := args.page()
	if err != nil {
		return nil, err
	}
	page, err := client.GetProjects(ctx, opts)
	if err != nil {
		return nil, err
	}
	return pageResult(page)
}

func getProject(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("project_id")
	if err != nil {
		return nil, err
	}
	project, err := client.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResult(project)
}

func addProject(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	var req todoist.AddProjectRequest
	var err error

	if req.Name, err = args.requiredText("name"); err != nil {
		return nil, err
	}
	if req.ParentID, err = args.optionalID("parent_id"); err != nil {
		return nil, err
	}
	if req.Color, err = args.stringValue("color"); err != nil {
		return nil, err
	}
	if req.Description, err = args.stringValue("description"); err != nil {
		return nil, err
	}
	if req.IsFavorite, err = args.optionalBool("is_favorite"); err != nil {
		return nil, err
	}
	viewStyle, err := args.viewStyle()
	if err != nil {
		return nil, err
	}
	if viewStyle != nil {
		req.ViewStyle = *viewStyle
	}

	project, err := client.AddProject(ctx, req)
	if err != nil {
		return nil, err
	}
	return entityResult(project, "Project %q created", req.Name)
}

func updateProject(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("project_id")
	if err != nil {
		return nil, err
	}
	if err := args.anyOf("name", "color", "is_favorite", "view_style", "description"); err != nil {
		return nil, err
	}

	var req todoist.UpdateProjectRequest
	if args.has("name") {
		name, err := args.requiredText("name")
		if err != nil {
			return nil, err
		}
		req.Name = &name
	}
	if req.Color, err = args.optionalString("color"); err != nil {
		return nil, err
	}
	if req.Description, err = args.optionalString("description"); err != nil {
		return nil, err
	}
	if req.IsFavorite, err = args.optionalBool("is_favorite"); err != nil {
		return nil, err
	}
	if req.ViewStyle, err = args.viewStyle(); err != nil {
		return nil, err
	}

	project, err := client.UpdateProject(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return entityResult(project, "Project %s updated", id)
}

func deleteProject(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("project_id")
	if err != nil {
		return nil, err
	}
	if err := client.DeleteProject(ctx, id); err != nil {
		return nil, err
	}
	return ackResult("Project %s deleted", id)
}
