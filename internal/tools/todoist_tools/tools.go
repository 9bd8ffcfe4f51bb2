package todoist_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/common"
)

// handlerFunc implements one tool against the Todoist API.
type handlerFunc func(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error)

// toolSpec is one entry of the tool catalog.
type toolSpec struct {
	tool      mcp.Tool
	resource  string
	operation string
	readOnly  bool
	handler   handlerFunc
}

// catalog returns every Todoist tool in registration order.
func catalog() []toolSpec {
	var specs []toolSpec
	specs = append(specs, projectTools()...)
	specs = append(specs, sectionTools()...)
	specs = append(specs, taskTools()...)
	specs = append(specs, commentTools()...)
	return specs
}

// Tools returns the tool definitions, optionally limited to read-only tools.
func Tools(readOnly bool) []mcp.Tool {
	var tools []mcp.Tool
	for _, spec := range catalog() {
		if readOnly && !spec.readOnly {
			continue
		}
		tools = append(tools, spec.tool)
	}
	return tools
}

// Resource returns the resource family of a tool, or "" for unknown names.
func Resource(toolName string) string {
	for _, spec := range catalog() {
		if spec.tool.Name == toolName {
			return spec.resource
		}
	}
	return ""
}

// RegisterTodoistTools registers the Todoist tools with the MCP server.
// In read-only mode only the tools that never modify data are registered.
func RegisterTodoistTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if s == nil || sc == nil {
		return fmt.Errorf("mcp server and server context are required")
	}

	seen := make(map[string]bool)
	for _, spec := range catalog() {
		if seen[spec.tool.Name] {
			return fmt.Errorf("duplicate tool name %q", spec.tool.Name)
		}
		seen[spec.tool.Name] = true

		if readOnly && !spec.readOnly {
			continue
		}

		handler := spec.handler
		s.AddTool(spec.tool, common.InstrumentedToolHandler(spec.tool.Name, spec.resource, spec.operation, spec.readOnly, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, sc.TodoistClient(), arguments(request.GetArguments()))
			}))
	}
	return nil
}

// readTool and writeTool attach the MCP behaviour hints of the catalog entry.
func readTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append([]mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	}, opts...)
	return mcp.NewTool(name, opts...)
}

func writeTool(name, description string, destructive bool, opts ...mcp.ToolOption) mcp.Tool {
	opts = append([]mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(destructive),
		mcp.WithOpenWorldHintAnnotation(true),
	}, opts...)
	return mcp.NewTool(name, opts...)
}

func pageOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Page size, 1 to %d (default %d)", todoist.MaxPageSize, defaultPageSize)),
			mcp.Min(1),
			mcp.Max(todoist.MaxPageSize),
		),
		mcp.WithString("cursor",
			mcp.Description("Cursor returned by a previous call to fetch the next page"),
		),
	}
}
