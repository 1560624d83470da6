// Package manager holds the collection lifecycle core shared by the three
// DevNote collection views: paginated loading with stale-response protection,
// the single inline editor session, the grouping/sorting projection, and the
// search-highlight pass. It renders nothing itself; the TUI subscribes to
// snapshots and projects them onto the screen.
package manager

import (
	"context"
	"sync"

	"github.com/Yugz29/DevNote/internal/model"
)

// scrollThreshold is the remaining distance to the bottom of the scroll
// region below which the next page is requested.
const scrollThreshold = 100

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseLoadingMore
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseLoadingMore:
		return "loading-more"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Strategy is the per-kind capability record a Controller is built from.
// FetchPage returns one page; for kinds that load the whole collection in a
// single call (todos), set DisablePaging and return an empty Next cursor.
type Strategy[T model.Item] struct {
	Kind          model.Kind
	DisablePaging bool
	FetchPage     func(ctx context.Context, projectID, cursor string) (model.Page[T], error)
}

// Snapshot is an immutable view of the controller state, safe to hand to a
// renderer. AppendedFrom is the index of the first item added by the most
// recent loadMore, or -1 when the whole collection was replaced; renderers
// use it to append rows without disturbing what is already on screen.
type Snapshot[T model.Item] struct {
	Kind         model.Kind
	ProjectID    string
	Phase        Phase
	Items        []T
	HasMore      bool
	Err          error
	AppendedFrom int
}

// Controller owns the canonical in-memory collection of one kind for the
// active project. Load and LoadMore block while the fetch runs; callers
// invoke them off the UI goroutine and observe results via OnChange.
//
// Overlapping loads are resolved by a generation counter: every Load bumps
// it, and a completion whose generation no longer matches is discarded, so
// only the last issued Load ever becomes visible.
type Controller[T model.Item] struct {
	strategy Strategy[T]

	mu         sync.Mutex
	projectID  string
	items      []T
	cursor     string
	phase      Phase
	loading    bool
	lastErr    error
	generation uint64

	onChange func(Snapshot[T])
}

func NewController[T model.Item](strategy Strategy[T]) *Controller[T] {
	return &Controller[T]{strategy: strategy, phase: PhaseIdle}
}

// OnChange registers the render hook. It is called after every committed
// state transition, without internal locks held. Must be set before the
// first Load.
func (c *Controller[T]) OnChange(fn func(Snapshot[T])) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Kind returns the collection kind this controller manages.
func (c *Controller[T]) Kind() model.Kind { return c.strategy.Kind }

// SetProject rebinds the controller. Nothing is reloaded or cleared; stale
// items stay visible until the next Load replaces them.
func (c *Controller[T]) SetProject(projectID string) {
	c.mu.Lock()
	c.projectID = projectID
	c.phase = PhaseIdle
	c.mu.Unlock()
}

// Seed installs a collection without a network round trip (offline cache
// warm-up). It is ignored once a real load has started.
func (c *Controller[T]) Seed(projectID string, items []T) {
	c.mu.Lock()
	if c.phase != PhaseIdle || c.projectID != projectID {
		c.mu.Unlock()
		return
	}
	c.items = items
	c.cursor = ""
	snap := c.snapshotLocked(-1)
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// Snapshot returns the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(-1)
}

func (c *Controller[T]) snapshotLocked(appendedFrom int) Snapshot[T] {
	items := make([]T, len(c.items))
	copy(items, c.items)
	var err error
	if c.phase == PhaseErrored {
		err = c.lastErr
	}
	return Snapshot[T]{
		Kind:         c.strategy.Kind,
		ProjectID:    c.projectID,
		Phase:        c.phase,
		Items:        items,
		HasMore:      c.cursor != "",
		Err:          err,
		AppendedFrom: appendedFrom,
	}
}

// Load discards the cursor and replaces the collection with page one.
// A no-op when no project is bound. Failures leave the previous items in
// place and flip the phase to Errored.
func (c *Controller[T]) Load(ctx context.Context) {
	c.mu.Lock()
	if c.projectID == "" {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	projectID := c.projectID
	c.cursor = ""
	c.loading = true
	c.phase = PhaseLoading
	snap := c.snapshotLocked(-1)
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}

	page, err := c.strategy.FetchPage(ctx, projectID, "")

	c.mu.Lock()
	if gen != c.generation {
		// A newer Load owns the state now; this response is stale.
		c.mu.Unlock()
		return
	}
	c.loading = false
	if err != nil {
		c.phase = PhaseErrored
		c.lastErr = err
	} else {
		c.items = page.Results
		c.cursor = page.Next
		c.phase = PhaseLoaded
		c.lastErr = nil
	}
	snap = c.snapshotLocked(-1)
	fn = c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// LoadMore appends the next page. Dropped (not queued) while any load is in
// flight, when pagination is disabled, when no cursor is available, or when
// no project is bound. A failed page keeps the cursor so the next scroll
// trigger retries it.
func (c *Controller[T]) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.loading || c.strategy.DisablePaging || c.cursor == "" || c.projectID == "" {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	projectID := c.projectID
	cursor := c.cursor
	c.loading = true
	c.phase = PhaseLoadingMore
	snap := c.snapshotLocked(-1)
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}

	page, err := c.strategy.FetchPage(ctx, projectID, cursor)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.loading = false
	appendedFrom := -1
	if err != nil {
		// Cursor stays put: scrolling again retries this page.
		c.phase = PhaseLoaded
		c.lastErr = err
	} else {
		appendedFrom = len(c.items)
		c.items = append(c.items, page.Results...)
		c.cursor = page.Next
		c.phase = PhaseLoaded
		c.lastErr = nil
	}
	pageErr := err
	snap = c.snapshotLocked(appendedFrom)
	snap.Err = pageErr
	fn = c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// OnScroll feeds the infinite-scroll trigger. remaining is the distance (in
// rows) between the viewport bottom and the end of the content; once it
// drops under the threshold the next page is requested. Deduplication comes
// from the loading gate alone, so a burst of scroll events costs at most one
// request.
func (c *Controller[T]) OnScroll(ctx context.Context, remaining int) {
	if remaining >= scrollThreshold {
		return
	}
	c.LoadMore(ctx)
}

// NeedsMore reports whether a scroll position this close to the bottom
// would trigger a fetch (without issuing one). The TUI uses it to decide
// whether to spawn the blocking LoadMore call.
func (c *Controller[T]) NeedsMore(remaining int) bool {
	if remaining >= scrollThreshold {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loading && !c.strategy.DisablePaging && c.cursor != "" && c.projectID != ""
}

// ProjectID returns the currently bound project.
func (c *Controller[T]) ProjectID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectID
}

// Mutate applies fn to the item with the given id and returns whether the
// item was found. Used for optimistic status updates; the caller is
// responsible for reverting on failure.
func (c *Controller[T]) Mutate(id string, fn func(*T)) bool {
	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].ItemID() == id {
			fn(&c.items[i])
			found = true
			break
		}
	}
	var snap Snapshot[T]
	var notify func(Snapshot[T])
	if found {
		snap = c.snapshotLocked(-1)
		notify = c.onChange
	}
	c.mu.Unlock()
	if found && notify != nil {
		notify(snap)
	}
	return found
}

// Find returns a copy of the item with the given id.
func (c *Controller[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.ItemID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
