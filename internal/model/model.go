package model

import "time"

// Kind identifies one of the three project collection types.
type Kind string

const (
	KindNotes    Kind = "notes"
	KindSnippets Kind = "snippets"
	KindTodos    Kind = "todos"
)

// Item is implemented by every collection member. Timestamps come from the
// server and are used for sorting only; the client never rewrites them.
type Item interface {
	ItemID() string
	ItemTitle() string
	CreatedTime() time.Time
	UpdatedTime() time.Time
}

type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Note struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"` // markdown
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n Note) ItemID() string         { return n.ID }
func (n Note) ItemTitle() string      { return n.Title }
func (n Note) CreatedTime() time.Time { return n.CreatedAt }
func (n Note) UpdatedTime() time.Time { return n.UpdatedAt }

type Snippet struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id,omitempty"`
	Title       string    `json:"title"`
	Language    string    `json:"language,omitempty"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s Snippet) ItemID() string         { return s.ID }
func (s Snippet) ItemTitle() string      { return s.Title }
func (s Snippet) CreatedTime() time.Time { return s.CreatedAt }
func (s Snippet) UpdatedTime() time.Time { return s.UpdatedAt }

type TodoStatus string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "in_progress"
	StatusDone       TodoStatus = "done"
)

// Next cycles pending → in_progress → done → pending. Unknown statuses are
// treated as pending so the cycle always makes progress.
func (st TodoStatus) Next() TodoStatus {
	switch st {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	case StatusDone:
		return StatusPending
	default:
		return StatusInProgress
	}
}

// Label returns the user-facing label for a status.
func (st TodoStatus) Label() string {
	switch st {
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return "Pending"
	}
}

// TodoStatuses lists the statuses in group/column display order.
func TodoStatuses() []TodoStatus {
	return []TodoStatus{StatusPending, StatusInProgress, StatusDone}
}

type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
)

// Rank orders priorities for sorting: high before medium before low.
// Unknown or empty priorities rank as medium.
func (p TodoPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func (p TodoPriority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}

type Todo struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"project_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TodoStatus   `json:"status"`
	Priority    TodoPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (t Todo) ItemID() string         { return t.ID }
func (t Todo) ItemTitle() string      { return t.Title }
func (t Todo) CreatedTime() time.Time { return t.CreatedAt }
func (t Todo) UpdatedTime() time.Time { return t.UpdatedAt }

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Page is the server's list envelope. Next is an opaque cursor; empty means
// there are no further pages.
type Page[T any] struct {
	Results []T    `json:"results"`
	Next    string `json:"next,omitempty"`
}

// SearchResults groups cross-project search hits by kind. Absent sections
// decode as empty slices.
type SearchResults struct {
	Notes    []Note    `json:"notes"`
	Snippets []Snippet `json:"snippets"`
	Todos    []Todo    `json:"todos"`
}
