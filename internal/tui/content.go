package tui

import (
	"strings"

	"github.com/Yugz29/DevNote/internal/cache"
	"github.com/Yugz29/DevNote/internal/manager"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the vertical space taken by the header, tab bar and
// footer around the scrolling content region.
const chromeHeight = 5

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func writeKindCache[T any](m *appModel, kind model.Kind, items []T) {
	if m.cache != nil && m.projectID != "" {
		cache.Put(m.cache, kind, m.projectID, items)
	}
}

// rebuildContent re-renders the active tab into the viewport and refreshes
// the row index used for selection and scroll-to. Called from Update after
// any state change that affects the content; View stays a pure projection.
func (m *appModel) rebuildContent() {
	if m.width == 0 {
		return
	}
	var body string
	var rows []rowRef
	switch m.tab {
	case tabSnippets:
		body, rows = m.buildSnippetsContent()
	case tabTodos:
		body, rows = m.buildTodosContent()
	default:
		body, rows = m.buildNotesContent()
	}
	m.content = body
	m.rows = rows
	m.viewport.SetContent(body)
}

func (m *appModel) collapsedSet() map[string]bool {
	return m.prefs.Collapsed(m.tab.kind(), m.projectID)
}

func (m *appModel) buildNotesContent() (string, []rowRef) {
	snap := m.notesSnap
	width := m.contentWidth()
	collapsed := m.collapsedSet()
	sorted := manager.SortItems(snap.Items, m.prefs.Sort(model.KindNotes))

	var b strings.Builder
	var rows []rowRef
	line := 0

	if block := m.editorBlockFor(model.KindNotes, ""); block != "" {
		appendBlock(&b, &line, block)
	}
	if ph := m.placeholderFor(snap.Phase, len(sorted), snap.Err); ph != "" {
		appendBlock(&b, &line, ph)
		return b.String(), rows
	}

	for i, n := range sorted {
		if m.editingItem(model.KindNotes, n.ID) {
			block := m.editorBlockFor(model.KindNotes, n.ID)
			rows = append(rows, rowRef{itemID: n.ID, line: line, height: lipgloss.Height(block)})
			appendBlock(&b, &line, block)
			continue
		}
		block := m.renderNoteCard(n, width, collapsed[n.ID], m.isSelected(i), m.flashID == n.ID)
		rows = append(rows, rowRef{itemID: n.ID, groupKey: n.ID, line: line, height: lipgloss.Height(block)})
		appendBlock(&b, &line, block)
	}
	return b.String(), rows
}

func (m *appModel) buildSnippetsContent() (string, []rowRef) {
	snap := m.snippetsSnap
	width := m.contentWidth()
	sorted := manager.SortItems(snap.Items, m.prefs.Sort(model.KindSnippets))

	var b strings.Builder
	var rows []rowRef
	line := 0

	if block := m.editorBlockFor(model.KindSnippets, ""); block != "" {
		appendBlock(&b, &line, block)
	}
	if ph := m.placeholderFor(snap.Phase, len(sorted), snap.Err); ph != "" {
		appendBlock(&b, &line, ph)
		return b.String(), rows
	}

	if m.prefs.View(model.KindSnippets) == manager.ViewGrouped {
		collapsed := m.collapsedSet()
		idx := 0
		for _, g := range manager.GroupSnippetsByLanguage(sorted, collapsed) {
			header := m.renderGroupHeader(g.Label, len(g.Items), g.Collapsed)
			rows = append(rows, rowRef{groupKey: g.Key, header: true, line: line, height: lipgloss.Height(header)})
			appendBlock(&b, &line, header)
			if g.Collapsed {
				continue
			}
			for _, s := range g.Items {
				block := m.snippetBlock(s, width, idx)
				rows = append(rows, rowRef{itemID: s.ID, groupKey: g.Key, line: line, height: lipgloss.Height(block)})
				appendBlock(&b, &line, block)
				idx++
			}
		}
		return b.String(), rows
	}

	for i, s := range sorted {
		block := m.snippetBlock(s, width, i)
		rows = append(rows, rowRef{itemID: s.ID, line: line, height: lipgloss.Height(block)})
		appendBlock(&b, &line, block)
	}
	return b.String(), rows
}

func (m *appModel) snippetBlock(s model.Snippet, width, idx int) string {
	if m.editingItem(model.KindSnippets, s.ID) {
		return m.editorBlockFor(model.KindSnippets, s.ID)
	}
	return m.renderSnippetCard(s, width, m.isSelected(idx), m.flashID == s.ID)
}

func (m *appModel) buildTodosContent() (string, []rowRef) {
	snap := m.todosSnap
	sorted := manager.SortItems(snap.Items, m.prefs.Sort(model.KindTodos))

	var b strings.Builder
	var rows []rowRef
	line := 0

	if block := m.editorBlockFor(model.KindTodos, ""); block != "" {
		appendBlock(&b, &line, block)
	}
	if ph := m.placeholderFor(snap.Phase, len(sorted), snap.Err); ph != "" {
		appendBlock(&b, &line, ph)
		return b.String(), rows
	}

	collapsed := m.collapsedSet()
	groups := manager.GroupTodosByStatus(sorted, collapsed)

	if m.prefs.View(model.KindTodos) == manager.ViewKanban {
		block := m.renderKanban(groups)
		// Kanban is one composite block; selection is highlighted inside
		// the columns, so the rows share the block's origin line.
		for _, g := range groups {
			for _, t := range g.Items {
				rows = append(rows, rowRef{itemID: t.ID, groupKey: g.Key, line: 0, height: 1})
			}
		}
		appendBlock(&b, &line, block)
		return b.String(), rows
	}

	idx := 0
	for _, g := range groups {
		header := m.renderGroupHeader(g.Label, len(g.Items), g.Collapsed)
		rows = append(rows, rowRef{groupKey: g.Key, header: true, line: line, height: lipgloss.Height(header)})
		appendBlock(&b, &line, header)
		if g.Collapsed {
			continue
		}
		for _, t := range g.Items {
			var block string
			if m.editingItem(model.KindTodos, t.ID) {
				block = m.editorBlockFor(model.KindTodos, t.ID)
			} else {
				block = m.renderTodoRow(t, m.isSelected(idx), m.flashID == t.ID)
			}
			rows = append(rows, rowRef{itemID: t.ID, groupKey: g.Key, line: line, height: lipgloss.Height(block)})
			appendBlock(&b, &line, block)
			idx++
		}
	}
	return b.String(), rows
}

func appendBlock(b *strings.Builder, line *int, block string) {
	if b.Len() > 0 {
		b.WriteString("\n")
		*line++
	}
	b.WriteString(block)
	*line += lipgloss.Height(block)
}

func (m *appModel) contentWidth() int {
	return maxInt(minInt(m.width-2, 110), 20)
}

func (m *appModel) isSelected(idx int) bool {
	return m.selIdx[m.tab] == idx
}

// itemRows returns the selectable (non-header) rows of the current tab.
func (m *appModel) itemRows() []rowRef {
	out := m.rows[:0:0]
	for _, r := range m.rows {
		if !r.header {
			out = append(out, r)
		}
	}
	return out
}

func (m *appModel) visibleItemCount() int {
	return len(m.itemRows())
}

func (m *appModel) selectedItemID() string {
	items := m.itemRows()
	idx := m.selIdx[m.tab]
	if idx < 0 || idx >= len(items) {
		return ""
	}
	return items[idx].itemID
}

func (m *appModel) moveSelection(delta int) {
	count := m.visibleItemCount()
	if count == 0 {
		return
	}
	idx := m.selIdx[m.tab] + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= count {
		idx = count - 1
	}
	m.selIdx[m.tab] = idx
	m.rebuildContent()
	m.ensureSelectionVisible()
}

func (m *appModel) ensureSelectionVisible() {
	items := m.itemRows()
	idx := m.selIdx[m.tab]
	if idx < 0 || idx >= len(items) {
		return
	}
	r := items[idx]
	if r.line < m.viewport.YOffset {
		m.viewport.SetYOffset(r.line)
	} else if bottom := r.line + r.height; bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// jumpToRow selects an item by id, centers it and flashes it. Returns nil
// when the item is not in the rendered collection.
func (m *appModel) jumpToRow(itemID string) tea.Cmd {
	items := m.itemRows()
	idx := -1
	for i, r := range items {
		if r.itemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	m.selIdx[m.tab] = idx
	r := items[idx]
	m.viewport.SetYOffset(maxInt(r.line-(m.viewport.Height-r.height)/2, 0))
	cmd := m.startFlash(itemID)
	m.rebuildContent()
	m.ensureSelectionVisible()
	return cmd
}

func (m *appModel) cycleSort() {
	kind := m.tab.kind()
	keys := manager.SortKeysFor(kind)
	cur := m.prefs.Sort(kind)
	next := keys[0]
	for i, k := range keys {
		if k == cur {
			next = keys[(i+1)%len(keys)]
			break
		}
	}
	m.prefs.SetSort(kind, next)
	m.rebuildContent()
}

func (m *appModel) toggleViewMode() {
	switch m.tab {
	case tabSnippets:
		if m.prefs.View(model.KindSnippets) == manager.ViewGrouped {
			m.prefs.SetView(model.KindSnippets, manager.ViewGrid)
		} else {
			m.prefs.SetView(model.KindSnippets, manager.ViewGrouped)
		}
	case tabTodos:
		if m.prefs.View(model.KindTodos) == manager.ViewKanban {
			m.prefs.SetView(model.KindTodos, manager.ViewList)
		} else {
			m.prefs.SetView(model.KindTodos, manager.ViewKanban)
		}
	default:
		return
	}
	m.selIdx[m.tab] = 0
	m.rebuildContent()
}

// toggleCollapseAtSelection folds the group the selection sits in. On the
// notes tab each card folds individually, keyed by note id.
func (m *appModel) toggleCollapseAtSelection() {
	items := m.itemRows()
	idx := m.selIdx[m.tab]
	if idx < 0 || idx >= len(items) {
		return
	}
	key := items[idx].groupKey
	if key == "" {
		return
	}
	m.prefs.ToggleCollapsed(m.tab.kind(), m.projectID, key)
	m.rebuildContent()
}
