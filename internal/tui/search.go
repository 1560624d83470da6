package tui

import (
	"strings"

	"github.com/Yugz29/DevNote/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type searchHit struct {
	kind      model.Kind
	id        string
	projectID string
	title     string
	context   string
}

func (m *appModel) searchHits() []searchHit {
	var hits []searchHit
	for _, n := range m.searchRes.Notes {
		hits = append(hits, searchHit{
			kind: model.KindNotes, id: n.ID, projectID: n.ProjectID,
			title: n.Title, context: truncate(n.Content, 60),
		})
	}
	for _, s := range m.searchRes.Snippets {
		hits = append(hits, searchHit{
			kind: model.KindSnippets, id: s.ID, projectID: s.ProjectID,
			title: s.Title, context: s.Language,
		})
	}
	for _, t := range m.searchRes.Todos {
		hits = append(hits, searchHit{
			kind: model.KindTodos, id: t.ID, projectID: t.ProjectID,
			title: t.Title, context: t.Status.Label(),
		})
	}
	return hits
}

func (m *appModel) searchResultCount() int {
	return len(m.searchHits())
}

// jumpToSearchResult leaves the overlay and navigates to the picked item:
// right project, right tab, query highlighted, item centered with a short
// flash.
func (m *appModel) jumpToSearchResult() tea.Cmd {
	hits := m.searchHits()
	if m.searchSel < 0 || m.searchSel >= len(hits) {
		return nil
	}
	hit := hits[m.searchSel]
	m.searching = false
	m.searchInput.Blur()
	m.activeQuery = strings.TrimSpace(m.searchInput.Value())

	targetTab := tabForKind(hit.kind)

	if hit.projectID != "" && hit.projectID != m.projectID {
		var project model.Project
		project.ID = hit.projectID
		for _, p := range m.projects {
			if p.ID == hit.projectID {
				project = p
				break
			}
		}
		m.jumpTargetID = hit.id
		cmd := m.selectProject(project)
		m.tab = targetTab
		m.rebuildContent()
		return cmd
	}

	m.tab = targetTab
	m.rebuildContent()
	if cmd := m.jumpToRow(hit.id); cmd != nil {
		return cmd
	}
	// Not on a loaded page yet; reload and finish the jump when the
	// snapshot lands.
	m.jumpTargetID = hit.id
	return m.loadCmd(targetTab)
}

func (m *appModel) renderSearchOverlay() string {
	width := minInt(m.width-8, 80)
	if width < 24 {
		width = 24
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Search"))
	lines = append(lines, m.searchInput.View())
	lines = append(lines, "")

	switch {
	case m.searchErr != "":
		lines = append(lines, styleError().Render(m.searchErr))
	case strings.TrimSpace(m.searchInput.Value()) == "":
		lines = append(lines, styleMuted().Render("Type to search across this workspace"))
	default:
		hits := m.searchHits()
		if len(hits) == 0 {
			lines = append(lines, styleMuted().Render("No results"))
		}
		shown := minInt(len(hits), 12)
		for i := 0; i < shown; i++ {
			h := hits[i]
			row := "[" + string(h.kind) + "] " + h.title
			if h.context != "" {
				row += "  " + styleMuted().Render(h.context)
			}
			if i == m.searchSel {
				row = lipgloss.NewStyle().
					Background(colorSelectedBg).
					Foreground(colorSelectedFg).
					Render("> " + row)
			} else {
				row = "  " + row
			}
			lines = append(lines, row)
		}
		if len(hits) > shown {
			lines = append(lines, styleMuted().Render("…"))
		}
	}

	lines = append(lines, "")
	lines = append(lines, styleMuted().Render("enter: open   ↑/↓: select   esc: close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
