package todoist_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

const attachmentResourceType = "file"

func commentTools() []toolSpec {
	commentID := mcp.WithString("comment_id", mcp.Required(), mcp.Description("ID of the comment"))

	return []toolSpec{
		{
			tool:      readTool("todoist_get_comment", "Get a single comment by ID", commentID),
			resource:  instrumentation.ResourceComments,
			operation: instrumentation.OperationGet,
			readOnly:  true,
			handler:   getComment,
		},
		{
			tool: readTool("todoist_get_comments", "List the comments of a task or of a project. Exactly one of task_id and project_id is required",
				append([]mcp.ToolOption{
					mcp.WithString("task_id", mcp.Description("ID of the task")),
					mcp.WithString("project_id", mcp.Description("ID of the project")),
				}, pageOptions()...)...,
			),
			resource:  instrumentation.ResourceComments,
			operation: instrumentation.OperationList,
			readOnly:  true,
			handler:   getComments,
		},
		{
			tool: writeTool("todoist_add_comment", "Comment on a task or on a project. Exactly one of task_id and project_id is required", false,
				mcp.WithString("content", mcp.Required(), mcp.Description("Comment text. Supports Markdown")),
				mcp.WithString("task_id", mcp.Description("ID of the task")),
				mcp.WithString("project_id", mcp.Description("ID of the project")),
				mcp.WithString("attachment_url", mcp.Description("URL of a file to attach")),
				mcp.WithString("attachment_name", mcp.Description("File name of the attachment")),
				mcp.WithString("attachment_type", mcp.Description("MIME type of the attachment")),
				mcp.WithArray("uids_to_notify", mcp.Description("User IDs to notify, as an array or a comma separated string"), mcp.WithStringItems()),
			),
			resource:  instrumentation.ResourceComments,
			operation: instrumentation.OperationCreate,
			handler:   addComment,
		},
		{
			tool: writeTool("todoist_update_comment", "Replace the text of a comment", false,
				commentID,
				mcp.WithString("content", mcp.Required(), mcp.Description("New comment text")),
			),
			resource:  instrumentation.ResourceComments,
			operation: instrumentation.OperationUpdate,
			handler:   updateComment,
		},
		{
			tool:      writeTool("todoist_delete_comment", "Delete a comment", true, commentID),
			resource:  instrumentation.ResourceComments,
			operation: instrumentation.OperationDelete,
			handler:   deleteComment,
		},
	}
}

// commentParent resolves the task or project a comment belongs to.
func commentParent(args arguments) (taskID, projectID string, err error) {
	key, id, err := args.exactlyOne("task_id", "project_id")
	if err != nil {
		return "", "", err
	}
	if key == "task_id" {
		return id, "", nil
	}
	return "", id, nil
}

func getComment(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	comment, err := client.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResult(comment)
}

func getComments(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	var opts todoist.CommentListOptions
	var err error

	if opts.TaskID, opts.ProjectID, err = commentParent(args); err != nil {
		return nil, err
	}
	if opts.PageOptions, err = args.page(); err != nil {
		return nil, err
	}

	page, err := client.GetComments(ctx, opts)
	if err != nil {
		return nil, err
	}
	return pageResult(page)
}

func addComment(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	var req todoist.AddCommentRequest
	var err error

	if req.Content, err = args.requiredText("content"); err != nil {
		return nil, err
	}
	if req.TaskID, req.ProjectID, err = commentParent(args); err != nil {
		return nil, err
	}
	if req.UIDsToNotify, _, err = args.stringList("uids_to_notify"); err != nil {
		return nil, err
	}

	attachmentURL, err := args.stringValue("attachment_url")
	if err != nil {
		return nil, err
	}
	if attachmentURL != "" {
		req.Attachment = &todoist.AttachmentInput{FileURL: attachmentURL, ResourceType: attachmentResourceType}
		if req.Attachment.FileName, err = args.stringValue("attachment_name"); err != nil {
			return nil, err
		}
		if req.Attachment.FileType, err = args.stringValue("attachment_type"); err != nil {
			return nil, err
		}
	} else if args.has("attachment_name") || args.has("attachment_type") {
		return nil, invalid("attachment_url", "is required when attachment_name or attachment_type is set")
	}

	comment, err := client.AddComment(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.TaskID != "" {
		return entityResult(comment, "Comment added to task %s", req.TaskID)
	}
	return entityResult(comment, "Comment added to project %s", req.ProjectID)
}

func updateComment(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	content, err := args.requiredText("content")
	if err != nil {
		return nil, err
	}
	comment, err := client.UpdateComment(ctx, id, todoist.UpdateCommentRequest{Content: content})
	if err != nil {
		return nil, err
	}
	return entityResult(comment, "Comment %s updated", id)
}

func deleteComment(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("comment_id")
	if err != nil {
		return nil, err
	}
	if err := client.DeleteComment(ctx, id); err != nil {
		return nil, err
	}
	return ackResult("Comment %s deleted", id)
}
