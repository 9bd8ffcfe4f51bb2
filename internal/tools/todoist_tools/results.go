package todoist_tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// pageResult renders the page's entities in remote order. An empty page
// renders as "[]". A follow-up text item carries the next cursor.
func pageResult[T any](page *todoist.Page[T]) (*mcp.CallToolResult, error) {
	results := page.Results
	if results == nil {
		results = []T{}
	}

	result, err := jsonResult(results)
	if err != nil {
		return nil, err
	}
	if page.NextCursor != "" {
		result.Content = append(result.Content, mcp.NewTextContent(
			fmt.Sprintf("More results available: call again with cursor %q", page.NextCursor),
		))
	}
	return result, nil
}

func ackResult(format string, a ...any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(fmt.Sprintf(format, a...)), nil
}

// entityResult renders a created or updated entity, or the acknowledgement
// when Todoist answered without a body.
func entityResult[T any](entity *T, format string, a ...any) (*mcp.CallToolResult, error) {
	if entity == nil {
		return ackResult(format, a...)
	}
	return jsonResult(entity)
}
