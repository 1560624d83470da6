package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/Yugz29/DevNote/internal/manager"
	"github.com/Yugz29/DevNote/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.projectsList.SetSize(msg.Width, msg.Height-2)
		m.viewport.Width = msg.Width
		m.viewport.Height = maxInt(msg.Height-chromeHeight, 1)
		m.bodyArea.SetWidth(minInt(msg.Width-6, 100))
		m.rebuildContent()
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			return m, m.setAlert("could not load projects: " + msg.err.Error())
		}
		m.projects = msg.projects
		m.projectsList.SetItems(projectListItems(msg.projects))
		return m, nil

	case notesLoadedMsg:
		m.applyNotesSnap(msg.snap)
		return m, m.afterSnapshot(tabNotes, msg.snap.Phase, msg.snap.Err)

	case snippetsLoadedMsg:
		m.applySnippetsSnap(msg.snap)
		return m, m.afterSnapshot(tabSnippets, msg.snap.Phase, msg.snap.Err)

	case todosLoadedMsg:
		m.applyTodosSnap(msg.snap)
		return m, m.afterSnapshot(tabTodos, msg.snap.Phase, msg.snap.Err)

	case statusAdvancedMsg:
		m.todosSnap = msg.snap
		m.rebuildContent()
		if msg.err != nil {
			m.debugLogf("status advance rolled back: %v", msg.err)
			return m, m.setAlert("status update failed: " + msg.err.Error())
		}
		return m, nil

	case editorSavedMsg:
		if msg.err != nil {
			var verr *manager.ValidationError
			if errors.As(msg.err, &verr) {
				m.editorErr = verr.Error()
				m.rebuildContent()
				return m, nil
			}
			m.editorErr = ""
			return m, m.setAlert("save failed: " + msg.err.Error())
		}
		m.closeEditorWidgets()
		m.rebuildContent()
		return m, m.loadCmd(tabForKind(msg.kind))

	case mutationDoneMsg:
		if msg.err != nil {
			return m, m.setAlert(msg.err.Error())
		}
		return m, m.loadCmd(tabForKind(msg.kind))

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		return m, m.searchCmd(query, msg.seq)

	case searchDoneMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.searchErr = msg.err.Error()
			return m, nil
		}
		m.searchErr = ""
		m.searchRes = msg.results
		m.searchSel = 0
		return m, nil

	case alertClearMsg:
		if msg.seq == m.alertSeq {
			m.alert = ""
		}
		return m, nil

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flashID = ""
			m.rebuildContent()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *appModel) applyNotesSnap(snap manager.Snapshot[model.Note]) {
	m.notesSnap = snap
	m.afterSnapApplied(model.KindNotes, snap.Phase, snap.Err, len(snap.Items))
}

func (m *appModel) applySnippetsSnap(snap manager.Snapshot[model.Snippet]) {
	m.snippetsSnap = snap
	m.afterSnapApplied(model.KindSnippets, snap.Phase, snap.Err, len(snap.Items))
}

func (m *appModel) applyTodosSnap(snap manager.Snapshot[model.Todo]) {
	m.todosSnap = snap
	m.afterSnapApplied(model.KindTodos, snap.Phase, snap.Err, len(snap.Items))
}

func (m *appModel) afterSnapApplied(kind model.Kind, phase manager.Phase, err error, count int) {
	if phase == manager.PhaseLoaded && err == nil {
		m.fromCache[kind] = false
		m.writeCache(kind)
	}
	if t := tabForKind(kind); m.selIdx[t] >= count && count > 0 {
		m.selIdx[t] = count - 1
	}
	m.rebuildContent()
}

func (m *appModel) writeCache(kind model.Kind) {
	switch kind {
	case model.KindNotes:
		writeKindCache(m, kind, m.notesSnap.Items)
	case model.KindSnippets:
		writeKindCache(m, kind, m.snippetsSnap.Items)
	case model.KindTodos:
		writeKindCache(m, kind, m.todosSnap.Items)
	}
}

// afterSnapshot handles the bits of a snapshot that produce follow-up
// commands: pending search jumps and transient page-load errors.
func (m *appModel) afterSnapshot(t tab, phase manager.Phase, err error) tea.Cmd {
	var cmds []tea.Cmd
	if err != nil {
		m.debugLogf("snapshot tab=%d phase=%s err=%v", int(t), phase, err)
	}
	if phase == manager.PhaseLoaded && err != nil {
		m.footerErr = "more items failed to load, scroll to retry"
	} else if phase == manager.PhaseLoaded {
		m.footerErr = ""
	}
	if m.jumpTargetID != "" && t == m.tab && phase == manager.PhaseLoaded {
		if cmd := m.jumpToRow(m.jumpTargetID); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.jumpTargetID = ""
	}
	return tea.Batch(cmds...)
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		return m.handleConfirmKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.session.Open() {
		return m.handleEditorKey(msg)
	}
	if m.view == viewProjects {
		return m.handleProjectsKey(msg)
	}
	return m.handleContentKey(msg)
}

func (m *appModel) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		return m, m.loadProjectsCmd()
	case "enter":
		if it, ok := m.projectsList.SelectedItem().(projectItem); ok {
			return m, m.selectProject(it.project)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.projectsList, cmd = m.projectsList.Update(msg)
	return m, cmd
}

func (m *appModel) handleContentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.view = viewProjects
		m.activeQuery = ""
		return m, m.loadProjectsCmd()

	case "1":
		return m, m.switchTab(tabNotes)
	case "2":
		return m, m.switchTab(tabSnippets)
	case "3":
		return m, m.switchTab(tabTodos)
	case "tab":
		return m, m.switchTab((m.tab + 1) % 3)
	case "shift+tab":
		return m, m.switchTab((m.tab + 2) % 3)

	case "j", "down":
		m.moveSelection(1)
		return m, m.maybeLoadMore()
	case "k", "up":
		m.moveSelection(-1)
		return m, nil
	case "g", "home":
		m.selIdx[m.tab] = 0
		m.viewport.GotoTop()
		return m, nil
	case "G", "end":
		m.selIdx[m.tab] = maxInt(m.visibleItemCount()-1, 0)
		m.viewport.GotoBottom()
		m.ensureSelectionVisible()
		return m, m.maybeLoadMore()
	case "ctrl+d", "pgdown":
		m.viewport.HalfViewDown()
		return m, m.maybeLoadMore()
	case "ctrl+u", "pgup":
		m.viewport.HalfViewUp()
		return m, nil

	case "n", "a":
		return m, m.openCreateEditor()
	case "enter", "e":
		return m, m.openEditEditor()
	case "d", "x":
		return m, m.requestDeleteSelected()

	case "s":
		m.cycleSort()
		return m, nil
	case "v":
		m.toggleViewMode()
		return m, nil
	case "c":
		m.toggleCollapseAtSelection()
		return m, nil

	case " ":
		if m.tab == tabTodos {
			if id := m.selectedItemID(); id != "" {
				return m, m.advanceStatusCmd(id)
			}
		}
		return m, nil

	case "r":
		return m, m.loadCmd(m.tab)

	case "/", "ctrl+k":
		m.searching = true
		m.searchInput.SetValue("")
		m.searchRes = model.SearchResults{}
		m.searchErr = ""
		m.searchSel = 0
		return m, m.searchInput.Focus()
	}
	return m, nil
}

func (m *appModel) switchTab(t tab) tea.Cmd {
	if t == m.tab {
		return nil
	}
	m.tab = t
	m.viewport.GotoTop()
	m.rebuildContent()
	// A tab whose controller never loaded for this project loads on first
	// visit; selectProject already kicks all three, so this only matters
	// after load failures.
	switch t {
	case tabSnippets:
		if m.snippetsSnap.Phase == manager.PhaseErrored {
			return m.loadCmd(t)
		}
	case tabTodos:
		if m.todosSnap.Phase == manager.PhaseErrored {
			return m.loadCmd(t)
		}
	default:
		if m.notesSnap.Phase == manager.PhaseErrored {
			return m.loadCmd(t)
		}
	}
	return nil
}

func (m *appModel) maybeLoadMore() tea.Cmd {
	remaining := m.viewport.TotalLineCount() - (m.viewport.YOffset + m.viewport.Height)
	switch m.tab {
	case tabNotes:
		if m.notes.NeedsMore(remaining) {
			return m.loadMoreCmd(tabNotes)
		}
	case tabSnippets:
		if m.snippets.NeedsMore(remaining) {
			return m.loadMoreCmd(tabSnippets)
		}
	}
	return nil
}

func (m *appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		m.confirming = false
		return m, m.confirmDeleteCmd()
	case "n", "esc", "ctrl+g":
		m.confirming = false
		m.session.CancelDelete()
		return m, nil
	case "enter":
		m.confirming = false
		if m.confirmFocus == confirmFocusConfirm {
			return m, m.confirmDeleteCmd()
		}
		m.session.CancelDelete()
		return m, nil
	}
	return m, nil
}

func (m *appModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "down", "ctrl+n":
		if m.searchSel < m.searchResultCount()-1 {
			m.searchSel++
		}
		return m, nil
	case "up", "ctrl+p":
		if m.searchSel > 0 {
			m.searchSel--
		}
		return m, nil
	case "enter":
		return m, m.jumpToSearchResult()
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.searchSeq++
		seq := m.searchSeq
		debounce := tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return searchDebounceMsg{seq: seq} })
		return m, tea.Batch(cmd, debounce)
	}
	return m, cmd
}

func (m *appModel) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+g":
		kind := m.session.Draft().Kind
		m.session.Cancel()
		m.closeEditorWidgets()
		m.rebuildContent()
		return m, m.loadCmd(tabForKind(kind))
	case "ctrl+s":
		m.syncDraftFromWidgets()
		return m, m.saveCmd()
	case "tab":
		m.cycleEditorFocus(1)
		m.rebuildContent()
		return m, nil
	case "shift+tab":
		m.cycleEditorFocus(-1)
		m.rebuildContent()
		return m, nil
	case "ctrl+t":
		m.cycleDraftStatus()
		return m, nil
	case "ctrl+b":
		m.cycleDraftPriority()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case fieldLanguage:
		m.langInput, cmd = m.langInput.Update(msg)
	case fieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	case fieldBody:
		m.bodyArea, cmd = m.bodyArea.Update(msg)
	}
	m.rebuildContent()
	return m, cmd
}
