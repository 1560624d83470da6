package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Yugz29/DevNote/internal/model"
)

func noteItem(id string, created time.Time) model.Note {
	return model.Note{ID: id, Title: "note " + id, CreatedAt: created, UpdatedAt: created}
}

// pageFetcher serves scripted pages keyed by cursor and records calls.
type pageFetcher struct {
	mu    sync.Mutex
	pages map[string]model.Page[model.Note]
	errs  map[string]error
	calls []string
	block chan struct{} // when set, fetches wait here before returning
}

func newPageFetcher() *pageFetcher {
	return &pageFetcher{
		pages: make(map[string]model.Page[model.Note]),
		errs:  make(map[string]error),
	}
}

func (f *pageFetcher) fetch(ctx context.Context, projectID, cursor string) (model.Page[model.Note], error) {
	f.mu.Lock()
	f.calls = append(f.calls, cursor)
	block := f.block
	page := f.pages[cursor]
	err := f.errs[cursor]
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return model.Page[model.Note]{}, err
	}
	return page, nil
}

func (f *pageFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newNotesController(f *pageFetcher) *Controller[model.Note] {
	return NewController(Strategy[model.Note]{Kind: model.KindNotes, FetchPage: f.fetch})
}

func TestLoadReplacesItems(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{
		Results: []model.Note{noteItem("a", now), noteItem("b", now)},
		Next:    "cursor-2",
	}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	snap := c.Snapshot()
	if snap.Phase != PhaseLoaded {
		t.Fatalf("phase = %v, want loaded", snap.Phase)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(snap.Items))
	}
	if !snap.HasMore {
		t.Fatalf("expected more pages")
	}
}

func TestLoadWithoutProjectIsNoop(t *testing.T) {
	f := newPageFetcher()
	c := newNotesController(f)
	c.Load(context.Background())
	if f.callCount() != 0 {
		t.Fatalf("fetch called %d times without a project", f.callCount())
	}
	if got := c.Snapshot().Phase; got != PhaseIdle {
		t.Fatalf("phase = %v, want idle", got)
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("slow", now)}}
	c := newNotesController(f)
	c.SetProject("p1")

	// First load parks inside the fetch until released.
	release := make(chan struct{})
	f.mu.Lock()
	f.block = release
	f.mu.Unlock()
	done := make(chan struct{})
	go func() {
		c.Load(context.Background())
		close(done)
	}()
	// Wait for the first fetch to be in flight.
	for f.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	// Second load completes first and must win.
	f.mu.Lock()
	f.block = nil
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("fast", now)}}
	f.mu.Unlock()
	c.Load(context.Background())

	close(release)
	<-done

	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "fast" {
		t.Fatalf("items = %+v, want the later load's result", snap.Items)
	}
	if snap.Phase != PhaseLoaded {
		t.Fatalf("phase = %v, want loaded", snap.Phase)
	}
}

func TestLoadFailureKeepsItems(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("a", now)}}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	f.mu.Lock()
	f.errs[""] = errors.New("boom")
	f.mu.Unlock()
	c.Load(context.Background())

	snap := c.Snapshot()
	if snap.Phase != PhaseErrored {
		t.Fatalf("phase = %v, want errored", snap.Phase)
	}
	if snap.Err == nil {
		t.Fatalf("expected error in snapshot")
	}
	if len(snap.Items) != 1 || snap.Items[0].ID != "a" {
		t.Fatalf("failure must not touch items, got %+v", snap.Items)
	}
}

func TestLoadMoreAppends(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("a", now)}, Next: "c2"}
	f.pages["c2"] = model.Page[model.Note]{Results: []model.Note{noteItem("b", now)}}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	var appendedFrom int
	c.OnChange(func(s Snapshot[model.Note]) {
		if s.AppendedFrom >= 0 {
			appendedFrom = s.AppendedFrom
		}
	})
	c.LoadMore(context.Background())

	snap := c.Snapshot()
	if len(snap.Items) != 2 || snap.Items[1].ID != "b" {
		t.Fatalf("items = %+v, want a then b", snap.Items)
	}
	if appendedFrom != 1 {
		t.Fatalf("appendedFrom = %d, want 1", appendedFrom)
	}
	if snap.HasMore {
		t.Fatalf("terminal page must clear the cursor")
	}
	// The cursor is spent; further loadMores are dropped.
	before := f.callCount()
	c.LoadMore(context.Background())
	if f.callCount() != before {
		t.Fatalf("loadMore fetched past the terminal page")
	}
}

func TestLoadMoreDroppedWhileLoading(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("a", now)}, Next: "c2"}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	release := make(chan struct{})
	f.mu.Lock()
	f.block = release
	f.mu.Unlock()
	done := make(chan struct{})
	go func() {
		c.LoadMore(context.Background())
		close(done)
	}()
	for f.callCount() < 2 {
		time.Sleep(time.Millisecond)
	}

	// Burst of scroll events while the page is in flight: all dropped.
	c.LoadMore(context.Background())
	c.LoadMore(context.Background())
	if f.callCount() != 2 {
		t.Fatalf("fetch called %d times, want 2", f.callCount())
	}
	close(release)
	<-done
}

func TestLoadMoreFailureKeepsCursor(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("a", now)}, Next: "c2"}
	f.errs["c2"] = errors.New("boom")
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	c.LoadMore(context.Background())
	snap := c.Snapshot()
	if !snap.HasMore {
		t.Fatalf("failed page must keep the cursor for retry")
	}
	if snap.Phase != PhaseLoaded {
		t.Fatalf("phase = %v, want loaded after failed loadMore", snap.Phase)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("items changed on failed loadMore: %+v", snap.Items)
	}

	// Scrolling again retries the same page.
	f.mu.Lock()
	delete(f.errs, "c2")
	f.pages["c2"] = model.Page[model.Note]{Results: []model.Note{noteItem("b", now)}}
	f.mu.Unlock()
	c.OnScroll(context.Background(), 50)
	if got := len(c.Snapshot().Items); got != 2 {
		t.Fatalf("items = %d after retry, want 2", got)
	}
}

func TestOnScrollThreshold(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("a", now)}, Next: "c2"}
	f.pages["c2"] = model.Page[model.Note]{Results: []model.Note{noteItem("b", now)}, Next: "c3"}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	c.OnScroll(context.Background(), 100)
	if got := f.callCount(); got != 1 {
		t.Fatalf("remaining=100 must not fetch, calls = %d", got)
	}
	c.OnScroll(context.Background(), 99)
	if got := f.callCount(); got != 2 {
		t.Fatalf("remaining=99 must fetch, calls = %d", got)
	}
}

func TestDisablePagingDropsLoadMore(t *testing.T) {
	calls := 0
	c := NewController(Strategy[model.Todo]{
		Kind:          model.KindTodos,
		DisablePaging: true,
		FetchPage: func(ctx context.Context, projectID, cursor string) (model.Page[model.Todo], error) {
			calls++
			return model.Page[model.Todo]{Results: []model.Todo{{ID: "t1", Title: "x"}}}, nil
		},
	})
	c.SetProject("p1")
	c.Load(context.Background())
	c.LoadMore(context.Background())
	if calls != 1 {
		t.Fatalf("fetch called %d times with paging disabled, want 1", calls)
	}
}

func TestSetProjectKeepsItemsUntilReload(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("a", now)}}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	c.SetProject("p2")
	snap := c.Snapshot()
	if snap.Phase != PhaseIdle {
		t.Fatalf("phase = %v after rebind, want idle", snap.Phase)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("rebind must not clear items, got %d", len(snap.Items))
	}
	if snap.ProjectID != "p2" {
		t.Fatalf("projectID = %q, want p2", snap.ProjectID)
	}
}

func TestMutateAndFind(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("a", now)}}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	if ok := c.Mutate("a", func(n *model.Note) { n.Title = "renamed" }); !ok {
		t.Fatalf("Mutate did not find the item")
	}
	got, ok := c.Find("a")
	if !ok || got.Title != "renamed" {
		t.Fatalf("Find after Mutate = %+v, %v", got, ok)
	}
	if ok := c.Mutate("missing", func(n *model.Note) {}); ok {
		t.Fatalf("Mutate reported success for an absent item")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("a", now)}}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Load(context.Background())

	snap := c.Snapshot()
	snap.Items[0].Title = "mangled"
	if got, _ := c.Find("a"); got.Title == "mangled" {
		t.Fatalf("snapshot shares backing storage with the controller")
	}
}

func TestSeed(t *testing.T) {
	f := newPageFetcher()
	now := time.Now()
	f.pages[""] = model.Page[model.Note]{Results: []model.Note{noteItem("live", now)}}
	c := newNotesController(f)
	c.SetProject("p1")
	c.Seed("p1", []model.Note{noteItem("cached", now)})
	if got, _ := c.Find("cached"); got.ID != "cached" {
		t.Fatalf("seed did not install cached items")
	}

	c.Load(context.Background())
	c.Seed("p1", []model.Note{noteItem("stale-cache", now)})
	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "live" {
		t.Fatalf("seed after load must be ignored, items = %+v", snap.Items)
	}
}

func TestPhaseStrings(t *testing.T) {
	phases := []Phase{PhaseIdle, PhaseLoading, PhaseLoaded, PhaseLoadingMore, PhaseErrored}
	seen := map[string]bool{}
	for _, p := range phases {
		s := fmt.Sprint(p)
		if s == "unknown" || seen[s] {
			t.Fatalf("phase %d has bad string %q", p, s)
		}
		seen[s] = true
	}
}
