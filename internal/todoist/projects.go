package todoist

import (
	"context"
	"net/http"
	"strings"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
)

const resourceProjects = instrumentation.ResourceProjects

// GetProjects returns one page of the user's projects.
func (c *Client) GetProjects(ctx context.Context, opts PageOptions) (*Page[Project], error) {
	var page Page[Project]
	if err := c.do(ctx, resourceProjects, instrumentation.OperationList, http.MethodGet, "/projects", opts.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProject retrieves a project by ID.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	if err := requireID("project_id", id); err != nil {
		return nil, err
	}
	var project Project
	if err := c.do(ctx, resourceProjects, instrumentation.OperationGet, http.MethodGet, entityPath("projects", id), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// AddProject creates a project. The project is nil when Todoist answers
// without a body.
func (c *Client) AddProject(ctx context.Context, req AddProjectRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, Required("name")
	}
	return sendEntity[Project](ctx, c, resourceProjects, instrumentation.OperationCreate, "/projects", req)
}

// UpdateProject changes the non-nil fields of req. The project is nil when
// Todoist answers without a body.
func (c *Client) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	if err := requireID("project_id", id); err != nil {
		return nil, err
	}
	return sendEntity[Project](ctx, c, resourceProjects, instrumentation.OperationUpdate, entityPath("projects", id), req)
}

// DeleteProject deletes a project together with its sections and tasks.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := requireID("project_id", id); err != nil {
		return err
	}
	return c.do(ctx, resourceProjects, instrumentation.OperationDelete, http.MethodDelete, entityPath("projects", id), nil, nil, nil)
}
