package tui

import (
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type projectItem struct {
	project model.Project
}

func (i projectItem) FilterValue() string { return i.project.Title }
func (i projectItem) Title() string       { return i.project.Title }
func (i projectItem) Description() string {
	if i.project.Description != "" {
		return i.project.Description
	}
	return "created " + i.project.CreatedAt.Format("2006-01-02")
}

func projectListItems(projects []model.Project) []list.Item {
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{project: p}
	}
	return items
}

func newProjectList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Projects"
	// The global footer renders its own help, keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("project", "projects")
	// The bubbles list quits on ESC by default; here ESC means back.
	l.KeyMap.Quit.SetKeys("q")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
