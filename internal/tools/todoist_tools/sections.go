package todoist_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

func sectionTools() []toolSpec {
	return []toolSpec{
		{
			tool: readTool("todoist_get_sections", "List sections, optionally limited to one project",
				append([]mcp.ToolOption{
					mcp.WithString("project_id", mcp.Description("Only sections of this project")),
				}, pageOptions()...)...,
			),
			resource:  instrumentation.ResourceSections,
			operation: instrumentation.OperationList,
			readOnly:  true,
			handler:   getSections,
		},
		{
			tool: readTool("todoist_get_section", "Get a single section by ID",
				mcp.WithString("section_id", mcp.Required(), mcp.Description("ID of the section")),
			),
			resource:  instrumentation.ResourceSections,
			operation: instrumentation.OperationGet,
			readOnly:  true,
			handler:   getSection,
		},
		{
			tool: writeTool("todoist_add_section", "Create a section in a project", false,
				mcp.WithString("name", mcp.Required(), mcp.Description("Name of the section")),
				mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project")),
				mcp.WithNumber("order", mcp.Description("Position among the project's sections")),
			),
			resource:  instrumentation.ResourceSections,
			operation: instrumentation.OperationCreate,
			handler:   addSection,
		},
		{
			tool: writeTool("todoist_update_section", "Rename a section", false,
				mcp.WithString("section_id", mcp.Required(), mcp.Description("ID of the section")),
				mcp.WithString("name", mcp.Required(), mcp.Description("New name")),
			),
			resource:  instrumentation.ResourceSections,
			operation: instrumentation.OperationUpdate,
			handler:   updateSection,
		},
		{
			tool: writeTool("todoist_delete_section", "Delete a section with all its tasks", true,
				mcp.WithString("section_id", mcp.Required(), mcp.Description("ID of the section")),
			),
			resource:  instrumentation.ResourceSections,
			operation: instrumentation.OperationDelete,
			handler:   deleteSection,
		},
	}
}

func getSections(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	projectID, err := args.optionalID("project_id")
	if err != nil {
		return nil, err
	}
	opts, err := args.page()
	if err != nil {
		return nil, err
	}
	page, err := client.GetSections(ctx, todoist.SectionListOptions{ProjectID: projectID, PageOptions: opts})
	if err != nil {
		return nil, err
	}
	return pageResult(page)
}

func getSection(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("section_id")
	if err != nil {
		return nil, err
	}
	section, err := client.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResult(section)
}

func addSection(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	name, err := args.requiredText("name")
	if err != nil {
		return nil, err
	}
	projectID, err := args.requiredID("project_id")
	if err != nil {
		return nil, err
	}
	order, err := args.optionalInt("order")
	if err != nil {
		return nil, err
	}

	section, err := client.AddSection(ctx, todoist.AddSectionRequest{Name: name, ProjectID: projectID, Order: order})
	if err != nil {
		return nil, err
	}
	return entityResult(section, "Section %q created in project %s", name, projectID)
}

func updateSection(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("section_id")
	if err != nil {
		return nil, err
	}
	name, err := args.requiredText("name")
	if err != nil {
		return nil, err
	}
	section, err := client.UpdateSection(ctx, id, todoist.UpdateSectionRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return entityResult(section, "Section %s updated", id)
}

func deleteSection(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("section_id")
	if err != nil {
		return nil, err
	}
	if err := client.DeleteSection(ctx, id); err != nil {
		return nil, err
	}
	return ackResult("Section %s deleted", id)
}
