package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/cache"
	"github.com/Yugz29/DevNote/internal/manager"
	"github.com/Yugz29/DevNote/internal/model"
	"github.com/Yugz29/DevNote/internal/prefs"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestAppModel(t *testing.T) *appModel {
	t.Helper()
	client, err := api.New("http://127.0.0.1:1/api", time.Second, "")
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	store := prefs.Open(filepath.Join(t.TempDir(), "prefs.sqlite"))
	t.Cleanup(func() { store.Close() })
	m := newAppModel(client, store, cache.Open(t.TempDir()))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestSelectProjectShowsLoadingPlaceholder(t *testing.T) {
	m := newTestAppModel(t)

	// The returned commands are what would run the blocking fetches; not
	// executing them holds the first load permanently in flight.
	if cmd := m.selectProject(model.Project{ID: "p1", Title: "Side Project"}); cmd == nil {
		t.Fatal("selectProject returned no load command")
	}

	if m.notesSnap.Phase != manager.PhaseLoading {
		t.Fatalf("notes phase = %s during in-flight first load", m.notesSnap.Phase)
	}
	if out := m.View(); !strings.Contains(out, "Loading") {
		t.Fatalf("uncached first load renders no loading placeholder:\n%s", out)
	}
}

func TestLoadMoreCmdShowsFooterIndicator(t *testing.T) {
	m := newTestAppModel(t)
	m.selectProject(model.Project{ID: "p1", Title: "Side Project"})

	if cmd := m.loadMoreCmd(tabNotes); cmd == nil {
		t.Fatal("loadMoreCmd returned nil for notes")
	}
	if m.notesSnap.Phase != manager.PhaseLoadingMore {
		t.Fatalf("notes phase = %s after loadMoreCmd", m.notesSnap.Phase)
	}
	if !m.loadingMore() {
		t.Fatal("footer loading-more indicator not armed")
	}
}

func TestClampLine(t *testing.T) {
	if got := clampLine("plain text", 20); got != "plain text" {
		t.Fatalf("clampLine = %q", got)
	}
	if got := clampLine("plain text", 5); got != "plai…" {
		t.Fatalf("clampLine = %q", got)
	}
	if got := clampLine("anything", 0); got != "" {
		t.Fatalf("clampLine = %q", got)
	}
	// Styled input keeps its escape sequences intact.
	styled := "\x1b[1mbold title\x1b[0m"
	got := clampLine(styled, 6)
	if !strings.Contains(got, "\x1b[1m") || !strings.HasSuffix(got, "…") {
		t.Fatalf("clampLine(styled) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 20); got != "hello world" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("hello world", 5); got != "hello…" {
		t.Fatalf("truncate = %q", got)
	}
	// Newlines and runs of spaces collapse so cards stay one block.
	if got := truncate("a\nb\t c", 20); got != "a b c" {
		t.Fatalf("truncate = %q", got)
	}
	// Rune-safe, not byte-safe.
	if got := truncate("héllo", 2); got != "hé…" {
		t.Fatalf("truncate = %q", got)
	}
}

func TestTabKindRoundTrip(t *testing.T) {
	for _, k := range []model.Kind{model.KindNotes, model.KindSnippets, model.KindTodos} {
		if got := tabForKind(k).kind(); got != k {
			t.Fatalf("tabForKind(%s).kind() = %s", k, got)
		}
	}
}

func TestBadgesCarryLabels(t *testing.T) {
	if s := statusBadge(model.StatusInProgress); !strings.Contains(s, "In Progress") {
		t.Fatalf("status badge = %q", s)
	}
	if s := priorityBadge(model.PriorityHigh); !strings.Contains(s, "High") {
		t.Fatalf("priority badge = %q", s)
	}
	if s := languageBadge("go"); !strings.Contains(s, "go") {
		t.Fatalf("language badge = %q", s)
	}
}

func TestAppendBlockTracksLines(t *testing.T) {
	var b strings.Builder
	line := 0
	appendBlock(&b, &line, "one\ntwo")
	if line != 2 {
		t.Fatalf("line = %d after two-line block", line)
	}
	// A separator line goes between blocks, so the next block starts at 3.
	appendBlock(&b, &line, "three")
	if line != 4 {
		t.Fatalf("line = %d after one-line block", line)
	}
	if got := b.String(); got != "one\ntwo\nthree" {
		t.Fatalf("content = %q", got)
	}
}

func TestSearchHitsFlattenAllKinds(t *testing.T) {
	m := &appModel{}
	m.searchRes = model.SearchResults{
		Notes:    []model.Note{{ID: "n1", ProjectID: "p1", Title: "note", Content: "body"}},
		Snippets: []model.Snippet{{ID: "s1", ProjectID: "p1", Title: "snip", Language: "go"}},
		Todos:    []model.Todo{{ID: "t1", ProjectID: "p2", Title: "todo", Status: model.StatusDone}},
	}

	hits := m.searchHits()
	if len(hits) != 3 || m.searchResultCount() != 3 {
		t.Fatalf("hits = %+v", hits)
	}
	if hits[0].kind != model.KindNotes || hits[0].context != "body" {
		t.Fatalf("note hit = %+v", hits[0])
	}
	if hits[1].context != "go" {
		t.Fatalf("snippet hit = %+v", hits[1])
	}
	if hits[2].kind != model.KindTodos || hits[2].context != "Done" {
		t.Fatalf("todo hit = %+v", hits[2])
	}
}

func TestContentWidthClamps(t *testing.T) {
	m := &appModel{width: 200}
	if got := m.contentWidth(); got != 110 {
		t.Fatalf("contentWidth = %d at width 200", got)
	}
	m.width = 80
	if got := m.contentWidth(); got != 78 {
		t.Fatalf("contentWidth = %d at width 80", got)
	}
	m.width = 10
	if got := m.contentWidth(); got != 20 {
		t.Fatalf("contentWidth = %d at width 10", got)
	}
}
