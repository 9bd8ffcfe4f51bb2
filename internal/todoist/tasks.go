package todoist

import (
	"context"
	"net/http"
	"strings"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
)

const resourceTasks = instrumentation.ResourceTasks

// GetTask retrieves an active task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	if err := requireID("task_id", id); err != nil {
		return nil, err
	}
	var task Task
	if err := c.do(ctx, resourceTasks, instrumentation.OperationGet, http.MethodGet, entityPath("tasks", id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasks returns one page of active tasks matching the given filters.
func (c *Client) GetTasks(ctx context.Context, opts TaskListOptions) (*Page[Task], error) {
	q := opts.values()
	setIfNotEmpty(q, "project_id", opts.ProjectID)
	setIfNotEmpty(q, "section_id", opts.SectionID)
	setIfNotEmpty(q, "parent_id", opts.ParentID)
	setIfNotEmpty(q, "label", opts.Label)
	if len(opts.IDs) > 0 {
		q.Set("ids", strings.Join(opts.IDs, ","))
	}

	var page Page[Task]
	if err := c.do(ctx, resourceTasks, instrumentation.OperationList, http.MethodGet, "/tasks", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FilterTasks runs a Todoist filter query. The query is forwarded verbatim;
// a malformed query comes back as an *APIError.
func (c *Client) FilterTasks(ctx context.Context, opts FilterOptions) (*Page[Task], error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, Required("query")
	}
	q := opts.values()
	q.Set("query", opts.Query)
	setIfNotEmpty(q, "lang", opts.Lang)

	var page Page[Task]
	if err := c.do(ctx, resourceTasks, instrumentation.OperationSearch, http.MethodGet, "/tasks/filter", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddTask creates a task. The task is nil when Todoist answers without a body.
func (c *Client) AddTask(ctx context.Context, req AddTaskRequest) (*Task, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, Required("content")
	}
	return sendEntity[Task](ctx, c, resourceTasks, instrumentation.OperationCreate, "/tasks", req)
}

// UpdateTask changes the non-nil fields of req. The task is nil when
// Todoist answers without a body.
func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	if err := requireID("task_id", id); err != nil {
		return nil, err
	}
	return sendEntity[Task](ctx, c, resourceTasks, instrumentation.OperationUpdate, entityPath("tasks", id), req)
}

// CloseTask completes a task. Recurring tasks move to their next occurrence.
func (c *Client) CloseTask(ctx context.Context, id string) error {
	if err := requireID("task_id", id); err != nil {
		return err
	}
	return c.do(ctx, resourceTasks, instrumentation.OperationComplete, http.MethodPost, entityPath("tasks", id, "close"), nil, nil, nil)
}

// ReopenTask marks a completed task as active again.
func (c *Client) ReopenTask(ctx context.Context, id string) error {
	if err := requireID("task_id", id); err != nil {
		return err
	}
	return c.do(ctx, resourceTasks, instrumentation.OperationReopen, http.MethodPost, entityPath("tasks", id, "reopen"), nil, nil, nil)
}

// MoveTask relocates a task to exactly one of a project, a section or a parent task.
func (c *Client) MoveTask(ctx context.Context, id string, req MoveTaskRequest) error {
	if err := requireID("task_id", id); err != nil {
		return err
	}
	set := 0
	for _, v := range []string{req.ProjectID, req.SectionID, req.ParentID} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return &ValidationError{Field: "project_id|section_id|parent_id", Constraint: "exactly one destination must be set"}
	}
	return c.do(ctx, resourceTasks, instrumentation.OperationMove, http.MethodPost, entityPath("tasks", id, "move"), nil, req, nil)
}

// DeleteTask deletes a task together with its subtasks.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := requireID("task_id", id); err != nil {
		return err
	}
	return c.do(ctx, resourceTasks, instrumentation.OperationDelete, http.MethodDelete, entityPath("tasks", id), nil, nil, nil)
}
