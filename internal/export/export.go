package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Yugz29/DevNote/internal/model"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteNotes writes one markdown file per note under dir/notes.
func WriteNotes(dir, projectTitle string, notes []model.Note, opt WriteOptions) (WriteResult, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	outDir := filepath.Join(filepath.Clean(dir), "notes")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	var written []string
	for _, n := range notes {
		p := filepath.Join(outDir, fileName(n.Title, n.ID))
		md := RenderNoteMarkdown(n, projectTitle)
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

// WriteSnippets writes one markdown file per snippet under dir/snippets.
func WriteSnippets(dir, projectTitle string, snippets []model.Snippet, opt WriteOptions) (WriteResult, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	outDir := filepath.Join(filepath.Clean(dir), "snippets")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	var written []string
	for _, s := range snippets {
		p := filepath.Join(outDir, fileName(s.Title, s.ID))
		md := RenderSnippetMarkdown(s, projectTitle)
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

// WriteTodos writes the project's todo checklist as dir/todos.md.
func WriteTodos(dir, projectTitle string, todos []model.Todo, opt WriteOptions) (WriteResult, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	if err := os.MkdirAll(filepath.Clean(dir), 0o755); err != nil {
		return WriteResult{}, err
	}
	p := filepath.Join(filepath.Clean(dir), "todos.md")
	md := RenderTodosMarkdown(todos, projectTitle)
	if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{p}}, nil
}

// fileName builds "<slug>-<id>.md". The id suffix keeps files unique when
// titles collide; the slug keeps the directory browsable.
func fileName(title, id string) string {
	slug := slugify(title)
	if slug == "" {
		return id + ".md"
	}
	return slug + "-" + id + ".md"
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	return slug
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
