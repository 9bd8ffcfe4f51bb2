package todoist

import (
	"context"
	"net/http"
	"strings"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
)

const resourceSections = instrumentation.ResourceSections

// GetSections returns one page of sections, optionally limited to one project.
func (c *Client) GetSections(ctx context.Context, opts SectionListOptions) (*Page[Section], error) {
	q := opts.values()
	if opts.ProjectID != "" {
		q.Set("project_id", opts.ProjectID)
	}
	var page Page[Section]
	if err := c.do(ctx, resourceSections, instrumentation.OperationList, http.MethodGet, "/sections", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetSection retrieves a section by ID.
func (c *Client) GetSection(ctx context.Context, id string) (*Section, error) {
	if err := requireID("section_id", id); err != nil {
		return nil, err
	}
	var section Section
	if err := c.do(ctx, resourceSections, instrumentation.OperationGet, http.MethodGet, entityPath("sections", id), nil, nil, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// AddSection creates a section in a project. The section is nil when
// Todoist answers without a body.
func (c *Client) AddSection(ctx context.Context, req AddSectionRequest) (*Section, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, Required("name")
	}
	if err := requireID("project_id", req.ProjectID); err != nil {
		return nil, err
	}
	return sendEntity[Section](ctx, c, resourceSections, instrumentation.OperationCreate, "/sections", req)
}

// UpdateSection renames a section. The section is nil when Todoist
// answers without a body.
func (c *Client) UpdateSection(ctx context.Context, id string, req UpdateSectionRequest) (*Section, error) {
	if err := requireID("section_id", id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, Required("name")
	}
	return sendEntity[Section](ctx, c, resourceSections, instrumentation.OperationUpdate, entityPath("sections", id), req)
}

// DeleteSection deletes a section and all tasks in it.
func (c *Client) DeleteSection(ctx context.Context, id string) error {
	if err := requireID("section_id", id); err != nil {
		return err
	}
	return c.do(ctx, resourceSections, instrumentation.OperationDelete, http.MethodDelete, entityPath("sections", id), nil, nil, nil)
}
