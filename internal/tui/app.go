package tui

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/cache"
	"github.com/Yugz29/DevNote/internal/manager"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 15 * time.Second

type view int

const (
	viewProjects view = iota
	viewContent
)

type tab int

const (
	tabNotes tab = iota
	tabSnippets
	tabTodos
)

func (t tab) kind() model.Kind {
	switch t {
	case tabSnippets:
		return model.KindSnippets
	case tabTodos:
		return model.KindTodos
	default:
		return model.KindNotes
	}
}

func tabForKind(k model.Kind) tab {
	switch k {
	case model.KindSnippets:
		return tabSnippets
	case model.KindTodos:
		return tabTodos
	default:
		return tabNotes
	}
}

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldLanguage
	fieldDescription
	fieldBody
)

// rowRef maps one rendered block back to the item or group header it shows,
// with its line offset inside the tab content. Selection movement and
// search scroll-to both navigate through these.
type rowRef struct {
	itemID   string
	groupKey string
	header   bool
	line     int
	height   int
}

type (
	projectsLoadedMsg struct {
		projects []model.Project
		err      error
	}
	notesLoadedMsg    struct{ snap manager.Snapshot[model.Note] }
	snippetsLoadedMsg struct{ snap manager.Snapshot[model.Snippet] }
	todosLoadedMsg    struct{ snap manager.Snapshot[model.Todo] }

	mutationDoneMsg struct {
		kind model.Kind
		err  error
	}
	statusAdvancedMsg struct {
		snap manager.Snapshot[model.Todo]
		err  error
	}
	editorSavedMsg struct {
		kind model.Kind
		err  error
	}

	searchDebounceMsg struct{ seq int }
	searchDoneMsg     struct {
		seq     int
		results model.SearchResults
		err     error
	}

	alertClearMsg struct{ seq int }
	flashClearMsg struct{ seq int }
)

type appModel struct {
	client *api.Client
	cache  *cache.Store

	notes    *manager.Controller[model.Note]
	snippets *manager.Controller[model.Snippet]
	todos    *manager.Controller[model.Todo]
	session  *manager.Session
	prefs    *manager.Prefs

	width  int
	height int

	view view
	tab  tab

	projectsList list.Model
	projects     []model.Project
	projectID    string
	projectName  string

	notesSnap    manager.Snapshot[model.Note]
	snippetsSnap manager.Snapshot[model.Snippet]
	todosSnap    manager.Snapshot[model.Todo]
	fromCache    map[model.Kind]bool
	footerErr    string

	viewport viewport.Model
	content  string
	rows     []rowRef
	selIdx   map[tab]int

	// Inline editor widgets, shared across kinds; which ones show depends
	// on the draft kind.
	titleInput textinput.Model
	langInput  textinput.Model
	descInput  textinput.Model
	bodyArea   textarea.Model
	focus      editorField
	editorErr  string

	confirming   bool
	confirmText  string
	confirmFocus confirmModalFocus

	alert    string
	alertSeq int

	searching    bool
	searchInput  textinput.Model
	searchSeq    int
	searchQuery  string
	searchRes    model.SearchResults
	searchErr    string
	searchSel    int
	activeQuery  string
	jumpTargetID string
	flashID      string
	flashSeq     int

	debugLogPath string
}

func newAppModel(client *api.Client, store manager.PrefStore, cacheStore *cache.Store) *appModel {
	m := &appModel{
		client:    client,
		cache:     cacheStore,
		prefs:     manager.NewPrefs(store),
		session:   manager.NewSession(client),
		view:      viewProjects,
		selIdx:    map[tab]int{},
		fromCache: map[model.Kind]bool{},
	}
	m.debugLogPath = strings.TrimSpace(os.Getenv("DEVNOTE_TUI_DEBUG_LOG"))

	m.notes = manager.NewController(manager.Strategy[model.Note]{
		Kind:      model.KindNotes,
		FetchPage: client.ListNotes,
	})
	m.snippets = manager.NewController(manager.Strategy[model.Snippet]{
		Kind:      model.KindSnippets,
		FetchPage: client.ListSnippets,
	})
	// Todos are grouped and column-split client side, which only works on
	// the complete collection, so the whole thing is fetched in one go.
	m.todos = manager.NewController(manager.Strategy[model.Todo]{
		Kind:          model.KindTodos,
		DisablePaging: true,
		FetchPage: func(ctx context.Context, projectID, cursor string) (model.Page[model.Todo], error) {
			all, err := client.ListAllTodos(ctx, projectID)
			return model.Page[model.Todo]{Results: all}, err
		},
	})

	// Mutates the model directly, so it must only fire on the Update
	// goroutine. RequestDelete is called from key handlers only; never
	// invoke it from inside a tea.Cmd.
	m.session.ConfirmPrompt = func(prompt string) {
		m.confirming = true
		m.confirmText = prompt
		m.confirmFocus = confirmFocusCancel
	}

	m.projectsList = newProjectList()
	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 200
	m.langInput = textinput.New()
	m.langInput.Placeholder = "Language"
	m.descInput = textinput.New()
	m.descInput.Placeholder = "Description"
	m.bodyArea = textarea.New()
	m.bodyArea.Placeholder = "Content"
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search notes, snippets and todos"
	m.viewport = viewport.New(0, 0)

	return m
}

func (m *appModel) Init() tea.Cmd {
	return m.loadProjectsCmd()
}

func (m *appModel) loadProjectsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		projects, err := client.ListAllProjects(ctx)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

// markPhase flips a tab's visible snapshot into an in-flight phase. The
// controller's own phase change happens on the command goroutine, after the
// current frame has rendered; the placeholder and footer indicators need the
// phase set before that.
func (m *appModel) markPhase(t tab, p manager.Phase) {
	switch t {
	case tabSnippets:
		m.snippetsSnap.Phase = p
	case tabTodos:
		m.todosSnap.Phase = p
	default:
		m.notesSnap.Phase = p
	}
	m.rebuildContent()
}

func (m *appModel) loadCmd(t tab) tea.Cmd {
	m.markPhase(t, manager.PhaseLoading)
	switch t {
	case tabSnippets:
		c := m.snippets
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			c.Load(ctx)
			return snippetsLoadedMsg{snap: c.Snapshot()}
		}
	case tabTodos:
		c := m.todos
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			c.Load(ctx)
			return todosLoadedMsg{snap: c.Snapshot()}
		}
	default:
		c := m.notes
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			c.Load(ctx)
			return notesLoadedMsg{snap: c.Snapshot()}
		}
	}
}

func (m *appModel) loadMoreCmd(t tab) tea.Cmd {
	switch t {
	case tabSnippets:
		m.markPhase(t, manager.PhaseLoadingMore)
		c := m.snippets
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			c.LoadMore(ctx)
			return snippetsLoadedMsg{snap: c.Snapshot()}
		}
	case tabTodos:
		return nil
	default:
		m.markPhase(t, manager.PhaseLoadingMore)
		c := m.notes
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			c.LoadMore(ctx)
			return notesLoadedMsg{snap: c.Snapshot()}
		}
	}
}

// selectProject binds all three controllers to the project, paints whatever
// the cache has from the last session and kicks off the real loads.
func (m *appModel) selectProject(p model.Project) tea.Cmd {
	m.projectID = p.ID
	m.projectName = p.Title
	m.view = viewContent
	m.selIdx = map[tab]int{}
	m.footerErr = ""

	m.notes.SetProject(p.ID)
	m.snippets.SetProject(p.ID)
	m.todos.SetProject(p.ID)

	if items, ok := cache.Get[model.Note](m.cache, model.KindNotes, p.ID); ok {
		m.notes.Seed(p.ID, items)
		m.fromCache[model.KindNotes] = true
	}
	if items, ok := cache.Get[model.Snippet](m.cache, model.KindSnippets, p.ID); ok {
		m.snippets.Seed(p.ID, items)
		m.fromCache[model.KindSnippets] = true
	}
	if items, ok := cache.Get[model.Todo](m.cache, model.KindTodos, p.ID); ok {
		m.todos.Seed(p.ID, items)
		m.fromCache[model.KindTodos] = true
	}
	m.notesSnap = m.notes.Snapshot()
	m.snippetsSnap = m.snippets.Snapshot()
	m.todosSnap = m.todos.Snapshot()
	m.rebuildContent()

	return tea.Batch(m.loadCmd(tabNotes), m.loadCmd(tabSnippets), m.loadCmd(tabTodos))
}

func (m *appModel) saveCmd() tea.Cmd {
	s := m.session
	kind := s.Draft().Kind
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := s.Save(ctx)
		return editorSavedMsg{kind: kind, err: err}
	}
}

func (m *appModel) confirmDeleteCmd() tea.Cmd {
	s := m.session
	kind := m.tab.kind()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := s.ConfirmDelete(ctx)
		return mutationDoneMsg{kind: kind, err: err}
	}
}

func (m *appModel) advanceStatusCmd(id string) tea.Cmd {
	c := m.todos
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := manager.AdvanceTodoStatus(ctx, c, client, id, nil)
		return statusAdvancedMsg{snap: c.Snapshot(), err: err}
	}
}

func (m *appModel) searchCmd(query string, seq int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := client.Search(ctx, query, "")
		return searchDoneMsg{seq: seq, results: res, err: err}
	}
}

func (m *appModel) setAlert(msg string) tea.Cmd {
	m.alert = msg
	m.alertSeq++
	seq := m.alertSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg { return alertClearMsg{seq: seq} })
}

// flash draws emphasis on the jumped-to card for a couple of seconds. The
// sequence counter makes a stale clear tick harmless when a new flash has
// started since.
func (m *appModel) startFlash(itemID string) tea.Cmd {
	m.flashID = itemID
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return flashClearMsg{seq: seq} })
}
