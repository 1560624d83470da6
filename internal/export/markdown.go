// Package export renders project content as markdown files on disk, so a
// project can be dropped into a wiki or static site generator.
package export

import (
	"bytes"
	"strings"
	"time"

	"github.com/Yugz29/DevNote/internal/model"
)

// RenderNoteMarkdown renders one note as a standalone markdown page.
// The note body is already markdown; it goes in verbatim under a meta block.
func RenderNoteMarkdown(note model.Note, projectTitle string) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(note.Title))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + note.ID)
	writeMetaProject(writeLn, projectTitle, note.ProjectID)
	writeMetaTimes(writeLn, note.CreatedAt, note.UpdatedAt)

	body := strings.TrimSpace(note.Content)
	if body != "" {
		writeLn("")
		writeLn(body)
	}
	return buf.String()
}

// RenderSnippetMarkdown renders a snippet with its code in a fenced block.
func RenderSnippetMarkdown(snippet model.Snippet, projectTitle string) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(snippet.Title))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + snippet.ID)
	writeMetaProject(writeLn, projectTitle, snippet.ProjectID)
	if lang := strings.TrimSpace(snippet.Language); lang != "" {
		writeLn("- Language: " + lang)
	}
	writeMetaTimes(writeLn, snippet.CreatedAt, snippet.UpdatedAt)

	if desc := strings.TrimSpace(snippet.Description); desc != "" {
		writeLn("")
		writeLn(desc)
	}

	writeLn("")
	fence := "```"
	// A snippet that itself contains a fence needs a longer one.
	for strings.Contains(snippet.Content, fence) {
		fence += "`"
	}
	writeLn(fence + strings.TrimSpace(snippet.Language))
	writeLn(strings.TrimRight(snippet.Content, "\n"))
	writeLn(fence)
	return buf.String()
}

// RenderTodosMarkdown renders a project's todos as a single checklist page,
// grouped by status in workflow order.
func RenderTodosMarkdown(todos []model.Todo, projectTitle string) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(projectTitle)
	if title == "" {
		title = "Todos"
	} else {
		title += " todos"
	}
	writeLn("# " + title)

	for _, status := range model.TodoStatuses() {
		var group []model.Todo
		for _, td := range todos {
			if td.Status == status {
				group = append(group, td)
			}
		}
		if len(group) == 0 {
			continue
		}
		writeLn("")
		writeLn("## " + status.Label())
		writeLn("")
		for _, td := range group {
			box := "[ ]"
			if td.Status == model.StatusDone {
				box = "[x]"
			}
			line := "- " + box + " " + strings.TrimSpace(td.Title)
			if td.Priority != "" {
				line += " (" + string(td.Priority) + ")"
			}
			writeLn(line)
			if desc := strings.TrimSpace(td.Description); desc != "" {
				writeLn("  " + strings.ReplaceAll(desc, "\n", "\n  "))
			}
		}
	}
	return buf.String()
}

func writeMetaProject(writeLn func(string), projectTitle, projectID string) {
	name := strings.TrimSpace(projectTitle)
	if name != "" && projectID != "" {
		writeLn("- Project: " + name + " (" + projectID + ")")
	} else if projectID != "" {
		writeLn("- Project: " + projectID)
	}
}

func writeMetaTimes(writeLn func(string), created, updated time.Time) {
	writeLn("- Created: " + created.UTC().Format(time.RFC3339))
	writeLn("- Updated: " + updated.UTC().Format(time.RFC3339))
}
