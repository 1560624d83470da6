package tui

import (
	"context"
	"strings"

	"github.com/Yugz29/DevNote/internal/manager"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *appModel) editingItem(kind model.Kind, id string) bool {
	if m.session.State() != manager.EditorEditing {
		return false
	}
	d := m.session.Draft()
	return d.Kind == kind && d.ItemID == id
}

func editorFields(kind model.Kind) []editorField {
	switch kind {
	case model.KindSnippets:
		return []editorField{fieldTitle, fieldLanguage, fieldDescription, fieldBody}
	case model.KindTodos:
		return []editorField{fieldTitle, fieldDescription}
	default:
		return []editorField{fieldTitle, fieldBody}
	}
}

func (m *appModel) openCreateEditor() tea.Cmd {
	if m.projectID == "" {
		return nil
	}
	if !m.session.OpenCreate(m.tab.kind(), m.projectID) {
		return nil
	}
	m.setupEditorWidgets(m.session.Draft())
	m.rebuildContent()
	return nil
}

func (m *appModel) openEditEditor() tea.Cmd {
	id := m.selectedItemID()
	if id == "" {
		return nil
	}
	var draft manager.Draft
	switch m.tab {
	case tabNotes:
		n, ok := m.notes.Find(id)
		if !ok {
			return nil
		}
		draft = manager.DraftFromNote(n)
	case tabSnippets:
		s, ok := m.snippets.Find(id)
		if !ok {
			return nil
		}
		draft = manager.DraftFromSnippet(s)
	case tabTodos:
		t, ok := m.todos.Find(id)
		if !ok {
			return nil
		}
		draft = manager.DraftFromTodo(t)
	}
	if !m.session.OpenEdit(draft) {
		return nil
	}
	m.setupEditorWidgets(draft)
	m.rebuildContent()
	return nil
}

func (m *appModel) requestDeleteSelected() tea.Cmd {
	id := m.selectedItemID()
	if id == "" {
		return nil
	}
	title := id
	switch m.tab {
	case tabNotes:
		if n, ok := m.notes.Find(id); ok {
			title = n.Title
		}
	case tabSnippets:
		if s, ok := m.snippets.Find(id); ok {
			title = s.Title
		}
	case tabTodos:
		if t, ok := m.todos.Find(id); ok {
			title = t.Title
		}
	}
	// The ConfirmPrompt hook flips the modal on; the request itself waits
	// for ConfirmDelete or CancelDelete.
	_ = m.session.RequestDelete(context.Background(), m.tab.kind(), id, title)
	return nil
}

func (m *appModel) setupEditorWidgets(d manager.Draft) {
	m.titleInput.SetValue(d.Title)
	m.langInput.SetValue(d.Language)
	m.descInput.SetValue(d.Description)
	m.bodyArea.SetValue(d.Content)
	m.editorErr = ""
	m.focus = fieldTitle
	m.titleInput.Focus()
	m.langInput.Blur()
	m.descInput.Blur()
	m.bodyArea.Blur()
}

func (m *appModel) closeEditorWidgets() {
	m.titleInput.Blur()
	m.langInput.Blur()
	m.descInput.Blur()
	m.bodyArea.Blur()
	m.titleInput.SetValue("")
	m.langInput.SetValue("")
	m.descInput.SetValue("")
	m.bodyArea.SetValue("")
	m.editorErr = ""
}

func (m *appModel) syncDraftFromWidgets() {
	d := m.session.Draft()
	d.Title = m.titleInput.Value()
	d.Language = strings.TrimSpace(m.langInput.Value())
	d.Description = m.descInput.Value()
	switch d.Kind {
	case model.KindNotes, model.KindSnippets:
		d.Content = m.bodyArea.Value()
	}
	m.session.SetDraft(d)
}

func (m *appModel) cycleEditorFocus(delta int) {
	fields := editorFields(m.session.Draft().Kind)
	cur := 0
	for i, f := range fields {
		if f == m.focus {
			cur = i
			break
		}
	}
	next := fields[(cur+delta+len(fields))%len(fields)]
	m.focus = next
	m.titleInput.Blur()
	m.langInput.Blur()
	m.descInput.Blur()
	m.bodyArea.Blur()
	switch next {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldLanguage:
		m.langInput.Focus()
	case fieldDescription:
		m.descInput.Focus()
	case fieldBody:
		m.bodyArea.Focus()
	}
}

// cycleDraftStatus and cycleDraftPriority rotate the todo-only enum fields
// from the editor without leaving the keyboard.
func (m *appModel) cycleDraftStatus() {
	d := m.session.Draft()
	if d.Kind != model.KindTodos {
		return
	}
	m.syncDraftFromWidgets()
	d = m.session.Draft()
	d.Status = d.Status.Next()
	m.session.SetDraft(d)
	m.rebuildContent()
}

func (m *appModel) cycleDraftPriority() {
	d := m.session.Draft()
	if d.Kind != model.KindTodos {
		return
	}
	m.syncDraftFromWidgets()
	d = m.session.Draft()
	switch d.Priority {
	case model.PriorityHigh:
		d.Priority = model.PriorityMedium
	case model.PriorityMedium:
		d.Priority = model.PriorityLow
	default:
		d.Priority = model.PriorityHigh
	}
	m.session.SetDraft(d)
	m.rebuildContent()
}

// editorBlockFor renders the inline editor when the session targets this
// slot: itemID is empty for the create slot above the collection and an id
// for in-place editing.
func (m *appModel) editorBlockFor(kind model.Kind, itemID string) string {
	if !m.session.Open() {
		return ""
	}
	d := m.session.Draft()
	if d.Kind != kind || d.ItemID != itemID {
		return ""
	}
	if itemID == "" && m.session.State() != manager.EditorCreating {
		return ""
	}

	width := m.contentWidth()
	label := "Edit " + string(kind)
	if m.session.State() == manager.EditorCreating {
		label = "New " + strings.TrimSuffix(string(kind), "s")
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(label))
	lines = append(lines, m.fieldView("Title", m.titleInput.View(), m.focus == fieldTitle))
	for _, f := range editorFields(kind) {
		switch f {
		case fieldLanguage:
			lines = append(lines, m.fieldView("Language", m.langInput.View(), m.focus == fieldLanguage))
		case fieldDescription:
			lines = append(lines, m.fieldView("Description", m.descInput.View(), m.focus == fieldDescription))
		case fieldBody:
			lines = append(lines, m.fieldView("Content", m.bodyArea.View(), m.focus == fieldBody))
		}
	}
	if kind == model.KindTodos {
		lines = append(lines, statusBadge(d.Status)+" "+priorityBadge(d.Priority)+
			styleMuted().Render("  ctrl+t: status  ctrl+b: priority"))
	}
	if m.editorErr != "" {
		lines = append(lines, styleError().Render(m.editorErr))
	}
	lines = append(lines, styleMuted().Render("ctrl+s: save   esc: cancel   tab: next field"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

func (m *appModel) fieldView(label, view string, focused bool) string {
	st := styleMuted()
	if focused {
		st = lipgloss.NewStyle().Foreground(colorAccent)
	}
	return st.Render(label) + "\n" + view
}
