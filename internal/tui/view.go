package tui

import (
	"strconv"
	"strings"

	"github.com/Yugz29/DevNote/internal/manager"

	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.searching {
		return m.renderSearchOverlay()
	}
	if m.confirming {
		return m.renderConfirmModal()
	}
	if m.view == viewProjects {
		return m.renderProjectsView()
	}
	return m.renderContentView()
}

func (m *appModel) renderProjectsView() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("DevNote")
	help := styleMuted().Render("enter: open   /: filter   r: reload   q: quit")
	return header + "\n" + m.projectsList.View() + "\n" + help
}

func (m *appModel) renderContentView() string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Render(m.projectName)
	if m.cachedBadgeVisible() {
		header += "  " + styleMuted().Render("(cached)")
	}
	b.WriteString(header + "\n")
	b.WriteString(m.renderTabBar() + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *appModel) cachedBadgeVisible() bool {
	return m.fromCache[m.tab.kind()]
}

func (m *appModel) renderTabBar() string {
	labels := []string{"notes", "snippets", "todos"}
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Padding(0, 1)
	inactive := styleMuted().Padding(0, 1)

	parts := make([]string, len(labels))
	for i, l := range labels {
		n := m.tabCount(tab(i))
		if n >= 0 {
			l += " " + strconv.Itoa(n)
		}
		if tab(i) == m.tab {
			parts[i] = active.Render(l)
		} else {
			parts[i] = inactive.Render(l)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	sortLabel := styleMuted().Render("  sort: " + string(m.prefs.Sort(m.tab.kind())) + m.viewModeLabel())
	return bar + sortLabel
}

func (m *appModel) viewModeLabel() string {
	switch m.tab {
	case tabSnippets, tabTodos:
		return "  view: " + string(m.prefs.View(m.tab.kind()))
	default:
		return ""
	}
}

func (m *appModel) tabCount(t tab) int {
	switch t {
	case tabSnippets:
		return len(m.snippetsSnap.Items)
	case tabTodos:
		return len(m.todosSnap.Items)
	default:
		return len(m.notesSnap.Items)
	}
}

func (m *appModel) renderFooter() string {
	if m.alert != "" {
		return styleError().Render(m.alert)
	}
	if m.footerErr != "" {
		return styleError().Render(m.footerErr)
	}
	if m.loadingMore() {
		return styleMuted().Render("loading more…")
	}
	help := "n: new  e: edit  d: delete  s: sort  v: view  c: fold  /: search  esc: projects  q: quit"
	if m.tab == tabTodos {
		help = "space: advance status  " + help
	}
	return styleMuted().Render(help)
}

func (m *appModel) loadingMore() bool {
	switch m.tab {
	case tabSnippets:
		return m.snippetsSnap.Phase == manager.PhaseLoadingMore
	case tabTodos:
		return false
	default:
		return m.notesSnap.Phase == manager.PhaseLoadingMore
	}
}

// renderConfirmModal draws the delete confirmation over a blank screen.
// Avoid borders nested inside a background-colored modal: some terminals
// show background artifacts there.
func (m *appModel) renderConfirmModal() string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render("Delete")
	cancel := btnBase.Render("Cancel")
	if m.confirmFocus == confirmFocusConfirm {
		confirm = btnActive.Render("Delete")
	} else {
		cancel = btnActive.Render("Cancel")
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	content := strings.Join([]string{
		m.confirmText,
		"",
		controls,
		"",
		styleMuted().Render("tab: focus   enter: select   y/n   esc: cancel"),
	}, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorError).
		Padding(1, 2).
		Width(minInt(m.width-8, 60)).
		Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
