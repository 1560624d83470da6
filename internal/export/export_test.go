package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Yugz29/DevNote/internal/model"
)

func TestRenderNoteMarkdown(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	n := model.Note{
		ID:        "n1",
		ProjectID: "p1",
		Title:     "Release checklist",
		Content:   "Some **markdown**.",
		CreatedAt: now,
		UpdatedAt: now,
	}

	md := RenderNoteMarkdown(n, "Side Project")
	for _, want := range []string{
		"# Release checklist",
		"- ID: n1",
		"- Project: Side Project (p1)",
		"- Created: 2026-03-14T09:00:00Z",
		"Some **markdown**.",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("rendered note missing %q:\n%s", want, md)
		}
	}
}

func TestRenderSnippetMarkdownFences(t *testing.T) {
	t.Parallel()

	s := model.Snippet{
		ID:       "s1",
		Title:    "usage",
		Language: "bash",
		Content:  "echo hi\n",
	}
	md := RenderSnippetMarkdown(s, "")
	if !strings.Contains(md, "```bash\necho hi\n```") {
		t.Fatalf("expected fenced bash block:\n%s", md)
	}

	// Content containing a fence gets a longer outer fence.
	s.Content = "```go\nfmt.Println()\n```"
	md = RenderSnippetMarkdown(s, "")
	if !strings.Contains(md, "````bash") {
		t.Fatalf("expected extended fence:\n%s", md)
	}
}

func TestRenderTodosMarkdownGroupsByStatus(t *testing.T) {
	t.Parallel()

	todos := []model.Todo{
		{ID: "t1", Title: "ship", Status: model.StatusDone, Priority: model.PriorityHigh},
		{ID: "t2", Title: "plan", Status: model.StatusPending},
	}
	md := RenderTodosMarkdown(todos, "Side Project")

	if !strings.Contains(md, "# Side Project todos") {
		t.Fatalf("missing title:\n%s", md)
	}
	if !strings.Contains(md, "- [x] ship (high)") {
		t.Fatalf("missing done checklist entry:\n%s", md)
	}
	pendingIdx := strings.Index(md, "## Pending")
	doneIdx := strings.Index(md, "## Done")
	if pendingIdx < 0 || doneIdx < 0 || pendingIdx > doneIdx {
		t.Fatalf("statuses out of workflow order:\n%s", md)
	}
	if strings.Contains(md, "## In Progress") {
		t.Fatalf("empty status group rendered:\n%s", md)
	}
}

func TestWriteNotesRefusesOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notes := []model.Note{{ID: "n1", Title: "Hello World"}}

	res, err := WriteNotes(dir, "P", notes, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteNotes: %v", err)
	}
	if len(res.Written) != 1 {
		t.Fatalf("written = %v", res.Written)
	}
	want := filepath.Join(dir, "notes", "hello-world-n1.md")
	if res.Written[0] != want {
		t.Fatalf("path = %s, want %s", res.Written[0], want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	if _, err := WriteNotes(dir, "P", notes, WriteOptions{}); err == nil {
		t.Fatal("expected overwrite refusal")
	}
	if _, err := WriteNotes(dir, "P", notes, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestFileNameFallsBackToID(t *testing.T) {
	t.Parallel()

	if got := fileName("日本語", "n9"); got != "n9.md" {
		t.Fatalf("fileName = %q", got)
	}
	if got := fileName("A  B!", "n1"); got != "a-b-n1.md" {
		t.Fatalf("fileName = %q", got)
	}
}
