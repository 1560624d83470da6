package tui

import (
	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/cache"
	"github.com/Yugz29/DevNote/internal/manager"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive dashboard and blocks until the user quits.
func Run(client *api.Client, prefs manager.PrefStore, cacheStore *cache.Store) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(client, prefs, cacheStore)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
