package manager

import (
	"testing"
	"time"

	"github.com/Yugz29/DevNote/internal/model"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 12, 0, 0, 0, time.UTC)
}

func TestSortCreatedNewestFirst(t *testing.T) {
	items := []model.Note{
		{ID: "old", CreatedAt: day(1)},
		{ID: "new", CreatedAt: day(3)},
		{ID: "mid", CreatedAt: day(2)},
	}
	got := SortItems(items, SortCreated)
	if got[0].ID != "new" || got[1].ID != "mid" || got[2].ID != "old" {
		t.Fatalf("order = %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if items[0].ID != "old" {
		t.Fatalf("SortItems mutated its input")
	}
}

func TestSortTitleCaseInsensitive(t *testing.T) {
	items := []model.Note{
		{ID: "b", Title: "banana"},
		{ID: "a", Title: "Apple"},
		{ID: "z", Title: "zebra"},
	}
	got := SortItems(items, SortTitle)
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "z" {
		t.Fatalf("order = %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestSortPriorityRankAndStability(t *testing.T) {
	items := []model.Todo{
		{ID: "low", Priority: model.PriorityLow},
		{ID: "med1", Priority: model.PriorityMedium},
		{ID: "high", Priority: model.PriorityHigh},
		{ID: "odd", Priority: "urgent"}, // unknown ranks as medium
		{ID: "med2", Priority: model.PriorityMedium},
	}
	got := SortItems(items, SortPriority)
	want := []string{"high", "med1", "odd", "med2", "low"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	items := []model.Note{{ID: "a"}, {ID: "b"}}
	got := SortItems(items, SortKey("bogus"))
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unknown key reordered items")
	}
}

func TestGroupTodosByStatus(t *testing.T) {
	items := []model.Todo{
		{ID: "d1", Status: model.StatusDone},
		{ID: "p1", Status: model.StatusPending},
		{ID: "p2", Status: model.StatusPending},
		{ID: "w1", Status: "weird"},
	}
	groups := GroupTodosByStatus(items, map[string]bool{"done": true})

	if len(groups) != 4 {
		t.Fatalf("groups = %d, want 3 fixed + 1 unknown", len(groups))
	}
	if groups[0].Key != "pending" || groups[1].Key != "in_progress" || groups[2].Key != "done" {
		t.Fatalf("fixed order broken: %s %s %s", groups[0].Key, groups[1].Key, groups[2].Key)
	}
	if len(groups[0].Items) != 2 || groups[0].Items[0].ID != "p1" {
		t.Fatalf("pending group = %+v", groups[0].Items)
	}
	if len(groups[1].Items) != 0 {
		t.Fatalf("empty in_progress column missing")
	}
	if !groups[2].Collapsed {
		t.Fatalf("collapse flag not applied")
	}
	if groups[3].Key != "weird" || len(groups[3].Items) != 1 {
		t.Fatalf("unknown status group = %+v", groups[3])
	}
}

func TestGroupSnippetsByLanguage(t *testing.T) {
	items := []model.Snippet{
		{ID: "s1", Language: "go"},
		{ID: "s2", Language: "Go"}, // distinct from "go"
		{ID: "s3", Language: ""},
		{ID: "s4", Language: "bash"},
		{ID: "s5", Language: "go"},
	}
	groups := GroupSnippetsByLanguage(items, nil)

	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	want := []string{"Go", "bash", "go", ""}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if groups[2].Items[0].ID != "s1" || groups[2].Items[1].ID != "s5" {
		t.Fatalf("in-group order not preserved: %+v", groups[2].Items)
	}
	if groups[3].Label != "Other" {
		t.Fatalf("no-language label = %q", groups[3].Label)
	}
}

func TestSortKeysFor(t *testing.T) {
	for _, k := range SortKeysFor(model.KindNotes) {
		if k == SortPriority {
			t.Fatalf("notes offer a priority sort")
		}
	}
	if SortKeysFor(model.KindTodos)[0] != SortPriority {
		t.Fatalf("todos do not lead with priority")
	}
}
