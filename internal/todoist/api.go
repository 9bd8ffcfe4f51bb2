package todoist

import "context"

// API is the set of Todoist operations the tool layer depends on.
// *Client implements it.
type API interface {
	GetProjects(ctx context.Context, opts PageOptions) (*Page[Project], error)
	GetProject(ctx context.Context, id string) (*Project, error)
	AddProject(ctx context.Context, req AddProjectRequest) (*Project, error)
	UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error)
	DeleteProject(ctx context.Context, id string) error

	GetSections(ctx context.Context, opts SectionListOptions) (*Page[Section], error)
	GetSection(ctx context.Context, id string) (*Section, error)
	AddSection(ctx context.Context, req AddSectionRequest) (*Section, error)
	UpdateSection(ctx context.Context, id string, req UpdateSectionRequest) (*Section, error)
	DeleteSection(ctx context.Context, id string) error

	GetTask(ctx context.Context, id string) (*Task, error)
	GetTasks(ctx context.Context, opts TaskListOptions) (*Page[Task], error)
	FilterTasks(ctx context.Context, opts FilterOptions) (*Page[Task], error)
	AddTask(ctx context.Context, req AddTaskRequest) (*Task, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error)
	CloseTask(ctx context.Context, id string) error
	ReopenTask(ctx context.Context, id string) error
	MoveTask(ctx context.Context, id string, req MoveTaskRequest) error
	DeleteTask(ctx context.Context, id string) error

	GetComment(ctx context.Context, id string) (*Comment, error)
	GetComments(ctx context.Context, opts CommentListOptions) (*Page[Comment], error)
	AddComment(ctx context.Context, req AddCommentRequest) (*Comment, error)
	UpdateComment(ctx context.Context, id string, req UpdateCommentRequest) (*Comment, error)
	DeleteComment(ctx context.Context, id string) error
}
