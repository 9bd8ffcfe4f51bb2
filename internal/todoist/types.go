package todoist

// Project is a Todoist project. Projects form a tree through ParentID.
type Project struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	ParentID       *string `json:"parent_id"`
	Color          string  `json:"color,omitempty"`
	ChildOrder     int     `json:"child_order"`
	ViewStyle      string  `json:"view_style,omitempty"`
	IsFavorite     bool    `json:"is_favorite"`
	IsShared       bool    `json:"is_shared"`
	IsArchived     bool    `json:"is_archived"`
	IsCollapsed    bool    `json:"is_collapsed"`
	InboxProject   bool    `json:"inbox_project,omitempty"`
	CanAssignTasks bool    `json:"can_assign_tasks"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// Section groups tasks inside exactly one project.
type Section struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Order       int    `json:"section_order"`
	IsCollapsed bool   `json:"is_collapsed"`
	IsArchived  bool   `json:"is_archived"`
	AddedAt     string `json:"added_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Task is a Todoist task. Checked is the completion state.
type Task struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Description    string    `json:"description"`
	ProjectID      string    `json:"project_id"`
	SectionID      *string   `json:"section_id"`
	ParentID       *string   `json:"parent_id"`
	Labels         []string  `json:"labels"`
	Priority       int       `json:"priority"`
	Due            *Due      `json:"due"`
	Deadline       *Deadline `json:"deadline"`
	Duration       *Duration `json:"duration"`
	Checked        bool      `json:"checked"`
	ChildOrder     int       `json:"child_order"`
	IsCollapsed    bool      `json:"is_collapsed"`
	NoteCount      int       `json:"note_count"`
	ResponsibleUID *string   `json:"responsible_uid"`
	AssignedByUID  *string   `json:"assigned_by_uid"`
	AddedByUID     string    `json:"added_by_uid,omitempty"`
	AddedAt        string    `json:"added_at,omitempty"`
	CompletedAt    *string   `json:"completed_at"`
	UpdatedAt      string    `json:"updated_at,omitempty"`
}

// Due is when a task is due. Date holds either YYYY-MM-DD or a
// full datetime; String is the natural language form.
type Due struct {
	Date        string  `json:"date"`
	String      string  `json:"string"`
	Lang        string  `json:"lang,omitempty"`
	IsRecurring bool    `json:"is_recurring"`
	Timezone    *string `json:"timezone"`
}

// Deadline is a task's hard deadline (a date, never recurring).
type Deadline struct {
	Date string `json:"date"`
	Lang string `json:"lang,omitempty"`
}

// Duration is the planned time for a task.
type Duration struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
}

// Comment belongs to exactly one task or one project.
type Comment struct {
	ID             string      `json:"id"`
	TaskID         *string     `json:"item_id,omitempty"`
	ProjectID      *string     `json:"project_id,omitempty"`
	Content        string      `json:"content"`
	PostedAt       string      `json:"posted_at,omitempty"`
	PostedUID      string      `json:"posted_uid,omitempty"`
	FileAttachment *Attachment `json:"file_attachment"`
	UIDsToNotify   []string    `json:"uids_to_notify,omitempty"`
}

// Attachment is a file attached to a comment.
type Attachment struct {
	ResourceType string `json:"resource_type,omitempty"`
	FileName     string `json:"file_name,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	FileURL      string `json:"file_url,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	UploadState  string `json:"upload_state,omitempty"`
}

// Page is one page of a cursor paginated collection.
type Page[T any] struct {
	Results    []T    `json:"results"`
	NextCursor string `json:"next_cursor"`
}

// View styles accepted for projects.
const (
	ViewStyleList     = "list"
	ViewStyleBoard    = "board"
	ViewStyleCalendar = "calendar"
)

// Duration units accepted for tasks.
const (
	DurationUnitMinute = "minute"
	DurationUnitDay    = "day"
)

// Priority bounds. 1 is normal, 4 is urgent.
const (
	MinPriority = 1
	MaxPriority = 4
)

// MaxPageSize is the largest page Todoist returns.
const MaxPageSize = 200

// PageOptions selects one page of a collection. Zero values are omitted.
type PageOptions struct {
	Cursor string
	Limit  int
}

// SectionListOptions filters GetSections.
type SectionListOptions struct {
	ProjectID string
	PageOptions
}

// TaskListOptions filters GetTasks.
type TaskListOptions struct {
	ProjectID string
	SectionID string
	ParentID  string
	Label     string
	IDs       []string
	PageOptions
}

// FilterOptions drives FilterTasks. Query is forwarded verbatim.
type FilterOptions struct {
	Query string
	Lang  string
	PageOptions
}

// CommentListOptions selects the comments of one task or one project.
type CommentListOptions struct {
	TaskID    string
	ProjectID string
	PageOptions
}

// AddProjectRequest is the body of POST /projects.
type AddProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	Color       string `json:"color,omitempty"`
	IsFavorite  *bool  `json:"is_favorite,omitempty"`
	ViewStyle   string `json:"view_style,omitempty"`
}

// UpdateProjectRequest is the body of POST /projects/{id}. Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsFavorite  *bool   `json:"is_favorite,omitempty"`
	ViewStyle   *string `json:"view_style,omitempty"`
}

// AddSectionRequest is the body of POST /sections.
type AddSectionRequest struct {
	Name      string `json:"name"`
	ProjectID string `json:"project_id"`
	Order     *int   `json:"order,omitempty"`
}

// UpdateSectionRequest is the body of POST /sections/{id}.
type UpdateSectionRequest struct {
	Name string `json:"name"`
}

// AddTaskRequest is the body of POST /tasks.
type AddTaskRequest struct {
	Content      string   `json:"content"`
	Description  string   `json:"description,omitempty"`
	ProjectID    string   `json:"project_id,omitempty"`
	SectionID    string   `json:"section_id,omitempty"`
	ParentID     string   `json:"parent_id,omitempty"`
	Order        *int     `json:"order,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	Priority     int      `json:"priority,omitempty"`
	DueString    string   `json:"due_string,omitempty"`
	DueDate      string   `json:"due_date,omitempty"`
	DueDatetime  string   `json:"due_datetime,omitempty"`
	DueLang      string   `json:"due_lang,omitempty"`
	AssigneeID   string   `json:"assignee_id,omitempty"`
	Duration     int      `json:"duration,omitempty"`
	DurationUnit string   `json:"duration_unit,omitempty"`
	DeadlineDate string   `json:"deadline_date,omitempty"`
	DeadlineLang string   `json:"deadline_lang,omitempty"`
}

// UpdateTaskRequest is the body of POST /tasks/{id}. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Content      *string   `json:"content,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Labels       *[]string `json:"labels,omitempty"`
	Priority     *int      `json:"priority,omitempty"`
	DueString    *string   `json:"due_string,omitempty"`
	DueDate      *string   `json:"due_date,omitempty"`
	DueDatetime  *string   `json:"due_datetime,omitempty"`
	DueLang      *string   `json:"due_lang,omitempty"`
	AssigneeID   *string   `json:"assignee_id,omitempty"`
	Duration     *int      `json:"duration,omitempty"`
	DurationUnit *string   `json:"duration_unit,omitempty"`
	DeadlineDate *string   `json:"deadline_date,omitempty"`
	DeadlineLang *string   `json:"deadline_lang,omitempty"`
}

// MoveTaskRequest names exactly one destination.
type MoveTaskRequest struct {
	ProjectID string `json:"project_id,omitempty"`
	SectionID string `json:"section_id,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
}

// AttachmentInput describes a file to attach to a new comment.
type AttachmentInput struct {
	FileURL      string `json:"file_url"`
	FileName     string `json:"file_name,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
}

// AddCommentRequest is the body of POST /comments. Exactly one of TaskID
// and ProjectID must be set.
type AddCommentRequest struct {
	Content      string           `json:"content"`
	TaskID       string           `json:"task_id,omitempty"`
	ProjectID    string           `json:"project_id,omitempty"`
	Attachment   *AttachmentInput `json:"attachment,omitempty"`
	UIDsToNotify []string         `json:"uids_to_notify,omitempty"`
}

// UpdateCommentRequest is the body of POST /comments/{id}.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}
