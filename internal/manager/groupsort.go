package manager

import (
	"sort"
	"strings"

	"github.com/Yugz29/DevNote/internal/model"
)

// SortKey selects the collection ordering.
type SortKey string

const (
	SortCreated  SortKey = "created"
	SortUpdated  SortKey = "updated"
	SortTitle    SortKey = "title"
	SortPriority SortKey = "priority" // todos only
)

// SortKeysFor lists the keys offered in a kind's sort menu.
func SortKeysFor(kind model.Kind) []SortKey {
	if kind == model.KindTodos {
		return []SortKey{SortPriority, SortCreated, SortUpdated, SortTitle}
	}
	return []SortKey{SortCreated, SortUpdated, SortTitle}
}

// SortItems returns a sorted copy. Created and updated sort newest first,
// title sorts ascending ignoring case, priority sorts high before medium
// before low. The sort is stable so equal items keep their server order;
// an unrecognized key leaves the order untouched.
func SortItems[T model.Item](items []T, key SortKey) []T {
	out := make([]T, len(items))
	copy(out, items)
	switch key {
	case SortCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedTime().After(out[j].CreatedTime())
		})
	case SortUpdated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedTime().After(out[j].UpdatedTime())
		})
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].ItemTitle()) < strings.ToLower(out[j].ItemTitle())
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return priorityRank(out[i]) < priorityRank(out[j])
		})
	}
	return out
}

func priorityRank(it model.Item) int {
	if t, ok := any(it).(model.Todo); ok {
		return t.Priority.Rank()
	}
	return model.TodoPriority("").Rank()
}

// Group is one section of a grouped view. Key is the stable identity used
// for collapse persistence; Label is what the view shows.
type Group[T model.Item] struct {
	Key       string
	Label     string
	Items     []T
	Collapsed bool
}

// GroupTodosByStatus splits todos into the fixed status columns, keeping
// the incoming order inside each group. Empty groups are included so the
// kanban view always shows all three columns. Unknown statuses land in
// their own trailing group rather than being dropped.
func GroupTodosByStatus(items []model.Todo, collapsed map[string]bool) []Group[model.Todo] {
	byStatus := make(map[model.TodoStatus][]model.Todo)
	var extraOrder []model.TodoStatus
	known := map[model.TodoStatus]bool{}
	for _, st := range model.TodoStatuses() {
		known[st] = true
	}
	for _, t := range items {
		if _, seen := byStatus[t.Status]; !seen && !known[t.Status] {
			extraOrder = append(extraOrder, t.Status)
		}
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}
	var groups []Group[model.Todo]
	for _, st := range model.TodoStatuses() {
		groups = append(groups, Group[model.Todo]{
			Key:       string(st),
			Label:     st.Label(),
			Items:     byStatus[st],
			Collapsed: collapsed[string(st)],
		})
	}
	for _, st := range extraOrder {
		groups = append(groups, Group[model.Todo]{
			Key:       string(st),
			Label:     string(st),
			Items:     byStatus[st],
			Collapsed: collapsed[string(st)],
		})
	}
	return groups
}

// GroupSnippetsByLanguage groups snippets by their language string as-is
// (keys are case-sensitive, so "Go" and "go" are distinct groups). Groups
// are ordered lexicographically with the no-language group last.
func GroupSnippetsByLanguage(items []model.Snippet, collapsed map[string]bool) []Group[model.Snippet] {
	byLang := make(map[string][]model.Snippet)
	for _, s := range items {
		byLang[s.Language] = append(byLang[s.Language], s)
	}
	keys := make([]string, 0, len(byLang))
	for k := range byLang {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := byLang[""]; ok {
		keys = append(keys, "")
	}
	groups := make([]Group[model.Snippet], 0, len(keys))
	for _, k := range keys {
		label := k
		if label == "" {
			label = "Other"
		}
		groups = append(groups, Group[model.Snippet]{
			Key:       k,
			Label:     label,
			Items:     byLang[k],
			Collapsed: collapsed[k],
		})
	}
	return groups
}
