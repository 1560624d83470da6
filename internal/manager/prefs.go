package manager

import "github.com/Yugz29/DevNote/internal/model"

// PrefStore is the persistence surface for view preferences. *prefs.Store
// satisfies it.
type PrefStore interface {
	Get(scope, key, def string) string
	Set(scope, key, value string)
	GetStrings(scope, key string) []string
	SetStrings(scope, key string, values []string)
}

// ViewMode selects how a collection is laid out.
type ViewMode string

const (
	ViewList    ViewMode = "list"
	ViewGrid    ViewMode = "grid"
	ViewGrouped ViewMode = "grouped"
	ViewKanban  ViewMode = "kanban"
)

// Prefs reads and writes the per-kind view preferences. Every preference
// materializes with its default on first read and survives restarts; no
// preference is ever deleted, only overwritten.
type Prefs struct {
	store PrefStore
}

func NewPrefs(store PrefStore) *Prefs {
	return &Prefs{store: store}
}

// DefaultSort is created first, todos prefer priority order out of the box.
func DefaultSort(kind model.Kind) SortKey {
	if kind == model.KindTodos {
		return SortPriority
	}
	return SortCreated
}

// DefaultView is grid for snippets, plain list otherwise.
func DefaultView(kind model.Kind) ViewMode {
	if kind == model.KindSnippets {
		return ViewGrid
	}
	return ViewList
}

func (p *Prefs) Sort(kind model.Kind) SortKey {
	return SortKey(p.store.Get(string(kind), "sort", string(DefaultSort(kind))))
}

func (p *Prefs) SetSort(kind model.Kind, key SortKey) {
	p.store.Set(string(kind), "sort", string(key))
}

func (p *Prefs) View(kind model.Kind) ViewMode {
	return ViewMode(p.store.Get(string(kind), "view", string(DefaultView(kind))))
}

func (p *Prefs) SetView(kind model.Kind, mode ViewMode) {
	p.store.Set(string(kind), "view", string(mode))
}

// Collapsed returns the set of collapsed group keys for a kind within a
// project. Keys absent from the set are expanded, which makes "expanded"
// the default for groups never touched.
func (p *Prefs) Collapsed(kind model.Kind, projectID string) map[string]bool {
	out := make(map[string]bool)
	for _, k := range p.store.GetStrings(string(kind), "collapsed:"+projectID) {
		out[k] = true
	}
	return out
}

func (p *Prefs) SetCollapsed(kind model.Kind, projectID string, collapsed map[string]bool) {
	keys := make([]string, 0, len(collapsed))
	for k, v := range collapsed {
		if v {
			keys = append(keys, k)
		}
	}
	p.store.SetStrings(string(kind), "collapsed:"+projectID, keys)
}

// ToggleCollapsed flips one group and persists the result, returning the
// updated set.
func (p *Prefs) ToggleCollapsed(kind model.Kind, projectID, groupKey string) map[string]bool {
	set := p.Collapsed(kind, projectID)
	if set[groupKey] {
		delete(set, groupKey)
	} else {
		set[groupKey] = true
	}
	p.SetCollapsed(kind, projectID, set)
	return set
}
