// Package todoist_tools exposes the Todoist API as MCP tools.
//
// The catalog has 24 tools in four families:
//   - projects: todoist_get_projects, todoist_get_project, todoist_add_project,
//     todoist_update_project, todoist_delete_project
//   - sections: todoist_get_sections, todoist_get_section, todoist_add_section,
//     todoist_update_section, todoist_delete_section
//   - tasks: todoist_get_task, todoist_get_tasks, todoist_filter_tasks,
//     todoist_add_task, todoist_update_task, todoist_complete_task,
//     todoist_uncomplete_task, todoist_move_task, todoist_delete_task
//   - comments: todoist_get_comment, todoist_get_comments, todoist_add_comment,
//     todoist_update_comment, todoist_delete_comment
//
// Arguments are validated before any request is sent. Each invocation makes
// at most one Todoist API call. Listing tools return one page; a second text
// item names the cursor of the next page when there is one.
package todoist_tools
