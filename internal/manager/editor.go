package manager

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/model"
)

// Writer is the mutation surface the editor session drives. *api.Client
// satisfies it; tests substitute fakes.
type Writer interface {
	CreateNote(ctx context.Context, projectID, title, content string) (model.Note, error)
	UpdateNote(ctx context.Context, id string, patch api.NotePatch) (model.Note, error)
	DeleteNote(ctx context.Context, id string) error

	CreateSnippet(ctx context.Context, projectID, title, language, content, description string) (model.Snippet, error)
	UpdateSnippet(ctx context.Context, id string, patch api.SnippetPatch) (model.Snippet, error)
	DeleteSnippet(ctx context.Context, id string) error

	CreateTodo(ctx context.Context, projectID, title, description string, status model.TodoStatus, priority model.TodoPriority) (model.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch api.TodoPatch) (model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

type EditorState int

const (
	EditorClosed EditorState = iota
	EditorCreating
	EditorEditing
)

// Draft carries the editable fields of one item. Fields that do not apply
// to the draft's kind are ignored on save.
type Draft struct {
	Kind      model.Kind
	ItemID    string // empty while creating
	ProjectID string

	Title       string
	Content     string
	Language    string
	Description string
	Status      model.TodoStatus
	Priority    model.TodoPriority
}

// ValidationError lists the fields that block a save.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate checks a draft against the rules shared by every edit surface:
// every kind needs a title, and a snippet additionally needs content.
func Validate(d Draft) error {
	var problems []string
	if strings.TrimSpace(d.Title) == "" {
		problems = append(problems, "title is required")
	}
	if d.Kind == model.KindSnippets && strings.TrimSpace(d.Content) == "" {
		problems = append(problems, "content is required")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Session is the single editor shared by every collection view. At most one
// item is ever being edited or created across the whole app; the open guards
// below enforce that.
//
// Save and ConfirmDelete block while the request runs; callers invoke them
// off the UI goroutine, so all state is mutex-guarded like the Controller's.
// Hooks run without the lock held.
type Session struct {
	writer Writer

	// Notify surfaces non-blocking failure messages (alert line in the
	// TUI, stderr in the CLI). Optional.
	Notify func(msg string)
	// Reload is invoked after any committed mutation so the owning
	// collection refreshes from the server. Optional.
	Reload func(kind model.Kind)
	// ConfirmPrompt shows the delete confirmation to the user; the
	// answer comes back through ConfirmDelete or CancelDelete. When nil
	// the delete proceeds immediately.
	ConfirmPrompt func(prompt string)

	mu      sync.Mutex
	state   EditorState
	draft   Draft
	pending *pendingDelete
}

type pendingDelete struct {
	kind model.Kind
	id   string
}

func NewSession(w Writer) *Session {
	return &Session{writer: w}
}

func (s *Session) State() EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != EditorClosed
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the working draft. Ignored while closed.
func (s *Session) SetDraft(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == EditorClosed {
		return
	}
	d.Kind = s.draft.Kind
	d.ItemID = s.draft.ItemID
	d.ProjectID = s.draft.ProjectID
	s.draft = d
}

// OpenCreate starts a new-item draft. Opening while a session for the same
// kind is already open is ignored; a session for a different kind is
// discarded without saving. Reports whether the editor opened.
func (s *Session) OpenCreate(kind model.Kind, projectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.openGuardLocked(kind) {
		return false
	}
	s.state = EditorCreating
	s.draft = Draft{Kind: kind, ProjectID: projectID}
	if kind == model.KindTodos {
		s.draft.Status = model.StatusPending
		s.draft.Priority = model.PriorityMedium
	}
	return true
}

// OpenEdit starts editing an existing item from a prefilled draft (see
// DraftFromNote and friends). Same guards as OpenCreate.
func (s *Session) OpenEdit(d Draft) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.openGuardLocked(d.Kind) {
		return false
	}
	s.state = EditorEditing
	s.draft = d
	return true
}

func (s *Session) openGuardLocked(kind model.Kind) bool {
	if s.state == EditorClosed {
		return true
	}
	if s.draft.Kind == kind {
		// Already editing in this collection; the existing session wins.
		return false
	}
	// Switching collections abandons the old draft.
	s.state = EditorClosed
	s.draft = Draft{}
	return true
}

// Save validates the draft and commits it. Validation and request failures
// both leave the session open with the draft intact so nothing typed is
// lost; success closes the session and reloads the collection. The request
// runs without the lock held; if the session was reopened for something else
// while it was in flight, the newer session survives.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.state == EditorClosed {
		s.mu.Unlock()
		return nil
	}
	d := s.draft
	creating := s.state == EditorCreating
	s.mu.Unlock()

	if err := Validate(d); err != nil {
		s.notify(err.Error())
		return err
	}
	var err error
	if creating {
		err = s.create(ctx, d)
	} else {
		err = s.update(ctx, d)
	}
	if err != nil {
		s.notify(fmt.Sprintf("save failed: %v", err))
		return err
	}

	s.mu.Lock()
	if s.state != EditorClosed && s.draft.Kind == d.Kind && s.draft.ItemID == d.ItemID {
		s.state = EditorClosed
		s.draft = Draft{}
	}
	s.mu.Unlock()
	s.reload(d.Kind)
	return nil
}

func (s *Session) create(ctx context.Context, d Draft) error {
	var err error
	switch d.Kind {
	case model.KindNotes:
		_, err = s.writer.CreateNote(ctx, d.ProjectID, d.Title, d.Content)
	case model.KindSnippets:
		_, err = s.writer.CreateSnippet(ctx, d.ProjectID, d.Title, d.Language, d.Content, d.Description)
	case model.KindTodos:
		_, err = s.writer.CreateTodo(ctx, d.ProjectID, d.Title, d.Description, d.Status, d.Priority)
	}
	return err
}

func (s *Session) update(ctx context.Context, d Draft) error {
	var err error
	switch d.Kind {
	case model.KindNotes:
		_, err = s.writer.UpdateNote(ctx, d.ItemID, api.NotePatch{Title: &d.Title, Content: &d.Content})
	case model.KindSnippets:
		_, err = s.writer.UpdateSnippet(ctx, d.ItemID, api.SnippetPatch{
			Title:       &d.Title,
			Language:    &d.Language,
			Content:     &d.Content,
			Description: &d.Description,
		})
	case model.KindTodos:
		_, err = s.writer.UpdateTodo(ctx, d.ItemID, api.TodoPatch{
			Title:       &d.Title,
			Description: &d.Description,
			Status:      &d.Status,
			Priority:    &d.Priority,
		})
	}
	return err
}

// Cancel discards the draft and reloads the collection, dropping any local
// divergence from the server.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.state == EditorClosed {
		s.mu.Unlock()
		return
	}
	kind := s.draft.Kind
	s.state = EditorClosed
	s.draft = Draft{}
	s.mu.Unlock()
	s.reload(kind)
}

// RequestDelete starts the delete flow for any item, whether or not an
// editor is open for it. With a ConfirmPrompt hook the actual delete waits
// for ConfirmDelete; without one it runs immediately.
func (s *Session) RequestDelete(ctx context.Context, kind model.Kind, id, title string) error {
	s.mu.Lock()
	s.pending = &pendingDelete{kind: kind, id: id}
	s.mu.Unlock()
	if s.ConfirmPrompt != nil {
		s.ConfirmPrompt(fmt.Sprintf("Delete %q? This cannot be undone.", title))
		return nil
	}
	return s.ConfirmDelete(ctx)
}

// ConfirmDelete performs the pending delete. A failed request leaves the
// collection untouched and surfaces an alert.
func (s *Session) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()
	if p == nil {
		return nil
	}
	var err error
	switch p.kind {
	case model.KindNotes:
		err = s.writer.DeleteNote(ctx, p.id)
	case model.KindSnippets:
		err = s.writer.DeleteSnippet(ctx, p.id)
	case model.KindTodos:
		err = s.writer.DeleteTodo(ctx, p.id)
	}
	if err != nil {
		s.notify(fmt.Sprintf("delete failed: %v", err))
		return err
	}
	s.mu.Lock()
	if s.state != EditorClosed && s.draft.Kind == p.kind && s.draft.ItemID == p.id {
		// The item under edit is gone; close without saving.
		s.state = EditorClosed
		s.draft = Draft{}
	}
	s.mu.Unlock()
	s.reload(p.kind)
	return nil
}

// CancelDelete drops the pending delete without touching anything.
func (s *Session) CancelDelete() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

func (s *Session) notify(msg string) {
	if s.Notify != nil {
		s.Notify(msg)
	}
}

func (s *Session) reload(kind model.Kind) {
	if s.Reload != nil {
		s.Reload(kind)
	}
}

// DraftFromNote prefills an edit draft.
func DraftFromNote(n model.Note) Draft {
	return Draft{Kind: model.KindNotes, ItemID: n.ID, ProjectID: n.ProjectID, Title: n.Title, Content: n.Content}
}

func DraftFromSnippet(sn model.Snippet) Draft {
	return Draft{
		Kind:        model.KindSnippets,
		ItemID:      sn.ID,
		ProjectID:   sn.ProjectID,
		Title:       sn.Title,
		Language:    sn.Language,
		Content:     sn.Content,
		Description: sn.Description,
	}
}

func DraftFromTodo(t model.Todo) Draft {
	return Draft{
		Kind:        model.KindTodos,
		ItemID:      t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
	}
}

// AdvanceTodoStatus cycles a todo's status and pushes the change to the
// server. The new status is applied to the collection immediately; if the
// request fails the previous status is restored and an alert raised.
func AdvanceTodoStatus(ctx context.Context, todos *Controller[model.Todo], w Writer, id string, notify func(string)) error {
	todo, ok := todos.Find(id)
	if !ok {
		return nil
	}
	prev := todo.Status
	next := prev.Next()
	todos.Mutate(id, func(t *model.Todo) { t.Status = next })
	if _, err := w.UpdateTodo(ctx, id, api.TodoPatch{Status: &next}); err != nil {
		todos.Mutate(id, func(t *model.Todo) { t.Status = prev })
		if notify != nil {
			notify(fmt.Sprintf("status update failed: %v", err))
		}
		return err
	}
	return nil
}
