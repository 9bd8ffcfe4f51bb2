package todoist

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
)

const resourceComments = instrumentation.ResourceComments

// commentParentError is returned unless exactly one of taskID and projectID is set.
func commentParentError(taskID, projectID string) error {
	if (taskID == "") == (projectID == "") {
		return &ValidationError{Field: "task_id|project_id", Constraint: "exactly one of task_id or project_id must be set"}
	}
	return nil
}

// GetComment retrieves a comment by ID.
func (c *Client) GetComment(ctx context.Context, id string) (*Comment, error) {
	if err := requireID("comment_id", id); err != nil {
		return nil, err
	}
	var comment Comment
	if err := c.do(ctx, resourceComments, instrumentation.OperationGet, http.MethodGet, entityPath("comments", id), nil, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComments returns one page of the comments on a task or on a project.
func (c *Client) GetComments(ctx context.Context, opts CommentListOptions) (*Page[Comment], error) {
	if err := commentParentError(opts.TaskID, opts.ProjectID); err != nil {
		return nil, err
	}
	q := opts.values()
	setIfNotEmpty(q, "task_id", opts.TaskID)
	setIfNotEmpty(q, "project_id", opts.ProjectID)

	var page Page[Comment]
	if err := c.do(ctx, resourceComments, instrumentation.OperationList, http.MethodGet, "/comments", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddComment posts a comment on a task or a project. The comment is nil
// when Todoist answers without a body.
func (c *Client) AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, Required("content")
	}
	if err := commentParentError(req.TaskID, req.ProjectID); err != nil {
		return nil, err
	}
	return sendEntity[Comment](ctx, c, resourceComments, instrumentation.OperationCreate, "/comments", req)
}

// UpdateComment replaces the text of a comment. The comment is nil when
// Todoist answers without a body.
func (c *Client) UpdateComment(ctx context.Context, id string, req UpdateCommentRequest) (*Comment, error) {
	if err := requireID("comment_id", id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, Required("content")
	}
	return sendEntity[Comment](ctx, c, resourceComments, instrumentation.OperationUpdate, entityPath("comments", id), req)
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	if err := requireID("comment_id", id); err != nil {
		return err
	}
	return c.do(ctx, resourceComments, instrumentation.OperationDelete, http.MethodDelete, entityPath("comments", id), nil, nil, nil)
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
