package tui

import (
	"fmt"
	"strings"

	"github.com/Yugz29/DevNote/internal/manager"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const snippetPreviewLen = 200

func cardStyle(width int, selected, flash bool) lipgloss.Style {
	border := colorCardBorder
	if flash {
		border = colorFlashBorder
	} else if selected {
		border = colorAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2)
}

// highlightText styles the active search query inside a line. Matching is
// literal, so whatever the user typed is emphasized as-is.
func (m *appModel) highlightText(text string) string {
	if m.activeQuery == "" {
		return text
	}
	segs := manager.HighlightSegments(text, m.activeQuery)
	var b strings.Builder
	for _, s := range segs {
		if s.Match {
			b.WriteString(styleHighlight().Render(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// clampLine truncates a styled line to width columns without cutting
// through escape sequences. Wrapping would break the row-to-line bookkeeping
// the selection relies on, so long lines are cut instead.
func clampLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func (m *appModel) renderNoteCard(n model.Note, width int, collapsed, selected, flash bool) string {
	title := lipgloss.NewStyle().Bold(true).Render(m.highlightText(n.Title))
	meta := styleMuted().Render(n.UpdatedAt.Format("2006-01-02 15:04"))
	fold := " "
	if collapsed {
		fold = "+"
	}
	head := fold + " " + title + "  " + meta

	if collapsed {
		return cardStyle(width, selected, flash).Render(head)
	}
	body := renderMarkdown(n.Content, width-6)
	if m.activeQuery != "" && manager.Matches(n.Content, m.activeQuery) {
		// Highlight inside the raw text; glamour output would bury the
		// match under its own styling.
		body = m.highlightText(n.Content)
	}
	if body == "" {
		return cardStyle(width, selected, flash).Render(head)
	}
	return cardStyle(width, selected, flash).Render(head + "\n" + body)
}

func (m *appModel) renderSnippetCard(s model.Snippet, width int, selected, flash bool) string {
	title := lipgloss.NewStyle().Bold(true).Render(m.highlightText(s.Title))
	head := title
	if s.Language != "" {
		head += "  " + languageBadge(s.Language)
	}
	lines := []string{head}
	if s.Description != "" {
		lines = append(lines, styleMuted().Render(truncate(s.Description, 120)))
	}
	preview := truncate(s.Content, snippetPreviewLen)
	if preview != "" {
		lines = append(lines, m.highlightText(preview))
	}
	lines = append(lines, styleMuted().Render(s.UpdatedAt.Format("2006-01-02 15:04")))
	return cardStyle(width, selected, flash).Render(strings.Join(lines, "\n"))
}

func (m *appModel) renderTodoRow(t model.Todo, selected, flash bool) string {
	line := statusBadge(t.Status) + " " + m.highlightText(t.Title) + " " + priorityBadge(t.Priority)
	if t.Description != "" {
		line += " " + styleMuted().Render(truncate(t.Description, 60))
	}
	st := lipgloss.NewStyle().Padding(0, 1)
	if flash {
		st = st.Background(colorHighlightBg).Foreground(colorHighlightFg)
	} else if selected {
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
	}
	return st.Render(line)
}

func (m *appModel) renderKanban(groups []manager.Group[model.Todo]) string {
	colWidth := maxInt((m.contentWidth()-2)/maxInt(len(groups), 1), 16)
	cols := make([]string, 0, len(groups))
	for _, g := range groups {
		var rows []string
		rows = append(rows, m.renderGroupHeader(g.Label, len(g.Items), g.Collapsed))
		if !g.Collapsed {
			for _, t := range g.Items {
				selected := m.selectedItemID() == t.ID
				row := clampLine(m.renderTodoRow(t, selected, m.flashID == t.ID), colWidth-2)
				rows = append(rows, lipgloss.NewStyle().Width(colWidth-2).Render(row))
			}
		}
		col := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorCardBorder).
			Width(colWidth).
			Render(strings.Join(rows, "\n"))
		cols = append(cols, col)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *appModel) renderGroupHeader(label string, count int, collapsed bool) string {
	marker := "▾"
	if collapsed {
		marker = "▸"
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(colorCardMetaFg).
		Render(fmt.Sprintf("%s %s (%d)", marker, label, count))
}

func statusBadge(st model.TodoStatus) string {
	var c lipgloss.TerminalColor
	switch st {
	case model.StatusDone:
		c = colorStatusDone
	case model.StatusInProgress:
		c = colorStatusInProgress
	default:
		c = colorStatusPending
	}
	return lipgloss.NewStyle().Foreground(c).Render("[" + st.Label() + "]")
}

func priorityBadge(p model.TodoPriority) string {
	var c lipgloss.TerminalColor
	switch p {
	case model.PriorityHigh:
		c = colorPriorityHigh
	case model.PriorityLow:
		c = colorPriorityLow
	default:
		c = colorPriorityMedium
	}
	return lipgloss.NewStyle().Foreground(c).Render("(" + p.Label() + ")")
}

func languageBadge(lang string) string {
	return lipgloss.NewStyle().
		Foreground(colorAccent).
		Render("·" + lang)
}

// placeholderFor renders the loading and error surfaces shown instead of
// the collection. Errors during loadMore do not reach here; those keep the
// loaded items and surface in the footer.
func (m *appModel) placeholderFor(phase manager.Phase, count int, err error) string {
	switch phase {
	case manager.PhaseLoading:
		if count == 0 {
			return styleMuted().Render("Loading…")
		}
	case manager.PhaseErrored:
		msg := "something went wrong"
		if err != nil {
			msg = err.Error()
		}
		return styleError().Render("Could not load: " + msg + "  (r to retry)")
	case manager.PhaseIdle, manager.PhaseLoaded, manager.PhaseLoadingMore:
		if count == 0 && phase == manager.PhaseLoaded {
			return styleMuted().Render("Nothing here yet. Press n to create one.")
		}
	}
	if count == 0 && m.fromCache[m.tab.kind()] {
		return styleMuted().Render("Loading…")
	}
	return ""
}
