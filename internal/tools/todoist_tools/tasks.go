package todoist_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

// taskFieldNames are the task attributes add and update have in common.
var taskFieldNames = []string{
	"content", "description", "labels", "priority",
	"due_string", "due_date", "due_datetime", "due_lang",
	"assignee_id", "duration", "duration_unit", "deadline_date", "deadline_lang",
}

func taskFieldOptions(contentRequired bool) []mcp.ToolOption {
	content := []mcp.PropertyOption{mcp.Description("Task title. Supports Markdown")}
	if contentRequired {
		content = append(content, mcp.Required())
	}

	return []mcp.ToolOption{
		mcp.WithString("content", content...),
		mcp.WithString("description", mcp.Description("Task description")),
		mcp.WithArray("labels", mcp.Description("Label names, as an array or a comma separated string"), mcp.WithStringItems()),
		mcp.WithNumber("priority", mcp.Description("Priority from 1 (normal) to 4 (urgent)"), mcp.Min(todoist.MinPriority), mcp.Max(todoist.MaxPriority)),
		mcp.WithString("due_string", mcp.Description("Natural language due date, e.g. \"every monday\"")),
		mcp.WithString("due_date", mcp.Description("Due date as YYYY-MM-DD")),
		mcp.WithString("due_datetime", mcp.Description("Due datetime in RFC 3339")),
		mcp.WithString("due_lang", mcp.Description("Language of due_string, e.g. en")),
		mcp.WithString("assignee_id", mcp.Description("User ID of the assignee in a shared project")),
		mcp.WithNumber("duration", mcp.Description("Planned duration amount, requires duration_unit")),
		mcp.WithString("duration_unit", mcp.Description("Unit of duration"), mcp.Enum(todoist.DurationUnitMinute, todoist.DurationUnitDay)),
		mcp.WithString("deadline_date", mcp.Description("Deadline as YYYY-MM-DD")),
		mcp.WithString("deadline_lang", mcp.Description("Language of the deadline")),
	}
}

func taskTools() []toolSpec {
	taskID := mcp.WithString("task_id", mcp.Required(), mcp.Description("ID of the task"))

	addOptions := append(taskFieldOptions(true),
		mcp.WithString("project_id", mcp.Description("Project to add the task to (default Inbox)")),
		mcp.WithString("section_id", mcp.Description("Section to add the task to")),
		mcp.WithString("parent_id", mcp.Description("Parent task, to create a subtask")),
		mcp.WithNumber("order", mcp.Description("Position among sibling tasks")),
	)
	updateOptions := append([]mcp.ToolOption{taskID}, taskFieldOptions(false)...)

	return []toolSpec{
		{
			tool:      readTool("todoist_get_task", "Get a single task by ID", taskID),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationGet,
			readOnly:  true,
			handler:   getTask,
		},
		{
			tool: readTool("todoist_get_tasks", "List active tasks, optionally narrowed by project, section, parent, label or IDs",
				append([]mcp.ToolOption{
					mcp.WithString("project_id", mcp.Description("Only tasks of this project")),
					mcp.WithString("section_id", mcp.Description("Only tasks of this section")),
					mcp.WithString("parent_id", mcp.Description("Only subtasks of this task")),
					mcp.WithString("label", mcp.Description("Only tasks with this label")),
					mcp.WithArray("ids", mcp.Description("Only these task IDs, as an array or a comma separated string"), mcp.WithStringItems()),
				}, pageOptions()...)...,
			),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationList,
			readOnly:  true,
			handler:   getTasks,
		},
		{
			tool: readTool("todoist_filter_tasks", "Find tasks with a Todoist filter query, e.g. \"today | overdue\"",
				append([]mcp.ToolOption{
					mcp.WithString("filter", mcp.Required(), mcp.Description("Todoist filter query")),
					mcp.WithString("lang", mcp.Description("Language of the query, e.g. en")),
				}, pageOptions()...)...,
			),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationSearch,
			readOnly:  true,
			handler:   filterTasks,
		},
		{
			tool:      writeTool("todoist_add_task", "Create a task", false, addOptions...),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationCreate,
			handler:   addTask,
		},
		{
			tool:      writeTool("todoist_update_task", "Update a task. At least one field besides task_id is required", false, updateOptions...),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationUpdate,
			handler:   updateTask,
		},
		{
			tool:      writeTool("todoist_complete_task", "Mark a task as completed", false, taskID),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationComplete,
			handler:   completeTask,
		},
		{
			tool:      writeTool("todoist_uncomplete_task", "Reopen a completed task", false, taskID),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationReopen,
			handler:   uncompleteTask,
		},
		{
			tool: writeTool("todoist_move_task", "Move a task to exactly one of a project, a section or a parent task", false,
				taskID,
				mcp.WithString("project_id", mcp.Description("Destination project")),
				mcp.WithString("section_id", mcp.Description("Destination section")),
				mcp.WithString("parent_id", mcp.Description("Destination parent task")),
			),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationMove,
			handler:   moveTask,
		},
		{
			tool:      writeTool("todoist_delete_task", "Delete a task and its subtasks", true, taskID),
			resource:  instrumentation.ResourceTasks,
			operation: instrumentation.OperationDelete,
			handler:   deleteTask,
		},
	}
}

func getTask(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("task_id")
	if err != nil {
		return nil, err
	}
	task, err := client.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResult(task)
}

func getTasks(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	var opts todoist.TaskListOptions
	var err error

	if opts.ProjectID, err = args.optionalID("project_id"); err != nil {
		return nil, err
	}
	if opts.SectionID, err = args.optionalID("section_id"); err != nil {
		return nil, err
	}
	if opts.ParentID, err = args.optionalID("parent_id"); err != nil {
		return nil, err
	}
	if opts.Label, err = args.stringValue("label"); err != nil {
		return nil, err
	}
	if opts.IDs, _, err = args.stringList("ids"); err != nil {
		return nil, err
	}
	if opts.PageOptions, err = args.page(); err != nil {
		return nil, err
	}

	page, err := client.GetTasks(ctx, opts)
	if err != nil {
		return nil, err
	}
	return pageResult(page)
}

func filterTasks(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	var opts todoist.FilterOptions
	var err error

	if opts.Query, err = args.requiredText("filter"); err != nil {
		return nil, err
	}
	if opts.Lang, err = args.stringValue("lang"); err != nil {
		return nil, err
	}
	if opts.PageOptions, err = args.page(); err != nil {
		return nil, err
	}

	page, err := client.FilterTasks(ctx, opts)
	if err != nil {
		return nil, err
	}
	return pageResult(page)
}

// parseTaskFields validates the shared task attributes. Absent arguments
// stay nil.
func parseTaskFields(args arguments) (todoist.UpdateTaskRequest, error) {
	var req todoist.UpdateTaskRequest
	var err error

	if args.has("content") {
		content, err := args.requiredText("content")
		if err != nil {
			return req, err
		}
		req.Content = &content
	}
	if req.Description, err = args.optionalString("description"); err != nil {
		return req, err
	}
	labels, present, err := args.stringList("labels")
	if err != nil {
		return req, err
	}
	if present {
		req.Labels = &labels
	}
	if req.Priority, err = args.priority(); err != nil {
		return req, err
	}

	if err := args.atMostOne("due_string", "due_date", "due_datetime"); err != nil {
		return req, err
	}
	if req.DueString, err = args.optionalString("due_string"); err != nil {
		return req, err
	}
	if req.DueDate, err = args.date("due_date"); err != nil {
		return req, err
	}
	if req.DueDatetime, err = args.datetime("due_datetime"); err != nil {
		return req, err
	}
	if req.DueLang, err = args.optionalString("due_lang"); err != nil {
		return req, err
	}

	if req.AssigneeID, err = args.optionalString("assignee_id"); err != nil {
		return req, err
	}
	if req.Duration, req.DurationUnit, err = args.duration(); err != nil {
		return req, err
	}
	if req.DeadlineDate, err = args.date("deadline_date"); err != nil {
		return req, err
	}
	if req.DeadlineLang, err = args.optionalString("deadline_lang"); err != nil {
		return req, err
	}
	return req, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func addTask(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	if _, err := args.requiredText("content"); err != nil {
		return nil, err
	}
	fields, err := parseTaskFields(args)
	if err != nil {
		return nil, err
	}

	req := todoist.AddTaskRequest{
		Content:      deref(fields.Content),
		Description:  deref(fields.Description),
		Labels:       deref(fields.Labels),
		Priority:     deref(fields.Priority),
		DueString:    deref(fields.DueString),
		DueDate:      deref(fields.DueDate),
		DueDatetime:  deref(fields.DueDatetime),
		DueLang:      deref(fields.DueLang),
		AssigneeID:   deref(fields.AssigneeID),
		Duration:     deref(fields.Duration),
		DurationUnit: deref(fields.DurationUnit),
		DeadlineDate: deref(fields.DeadlineDate),
		DeadlineLang: deref(fields.DeadlineLang),
	}
	if req.ProjectID, err = args.optionalID("project_id"); err != nil {
		return nil, err
	}
	if req.SectionID, err = args.optionalID("section_id"); err != nil {
		return nil, err
	}
	if req.ParentID, err = args.optionalID("parent_id"); err != nil {
		return nil, err
	}
	if req.Order, err = args.optionalInt("order"); err != nil {
		return nil, err
	}

	task, err := client.AddTask(ctx, req)
	if err != nil {
		return nil, err
	}
	return entityResult(task, "Task %q created", req.Content)
}

func updateTask(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("task_id")
	if err != nil {
		return nil, err
	}
	if err := args.anyOf(taskFieldNames...); err != nil {
		return nil, err
	}
	req, err := parseTaskFields(args)
	if err != nil {
		return nil, err
	}

	task, err := client.UpdateTask(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return entityResult(task, "Task %s updated", id)
}

// completeTask closes the task. Completing an already completed task is
// passed through to Todoist unchanged.
func completeTask(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("task_id")
	if err != nil {
		return nil, err
	}
	if err := client.CloseTask(ctx, id); err != nil {
		return nil, err
	}
	return ackResult("Task %s completed", id)
}

func uncompleteTask(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("task_id")
	if err != nil {
		return nil, err
	}
	if err := client.ReopenTask(ctx, id); err != nil {
		return nil, err
	}
	return ackResult("Task %s reopened", id)
}

func moveTask(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("task_id")
	if err != nil {
		return nil, err
	}
	key, dest, err := args.exactlyOne("project_id", "section_id", "parent_id")
	if err != nil {
		return nil, err
	}

	var req todoist.MoveTaskRequest
	switch key {
	case "project_id":
		req.ProjectID = dest
	case "section_id":
		req.SectionID = dest
	case "parent_id":
		req.ParentID = dest
	}
	if err := client.MoveTask(ctx, id, req); err != nil {
		return nil, err
	}
	return ackResult("Task %s moved to %s %s", id, key[:len(key)-len("_id")], dest)
}

func deleteTask(ctx context.Context, client todoist.API, args arguments) (*mcp.CallToolResult, error) {
	id, err := args.requiredID("task_id")
	if err != nil {
		return nil, err
	}
	if err := client.DeleteTask(ctx, id); err != nil {
		return nil, err
	}
	return ackResult("Task %s deleted", id)
}
