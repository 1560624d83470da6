package cli

import (
	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/format"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Note commands",
	}
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesCreateCmd(app))
	cmd.AddCommand(newNotesUpdateCmd(app))
	cmd.AddCommand(newNotesDeleteCmd(app))
	return cmd
}

func notesTable(notes []model.Note) *format.Table {
	t := &format.Table{Headers: []string{"ID", "TITLE", "UPDATED"}}
	for _, n := range notes {
		t.Rows = append(t.Rows, []string{n.ID, n.Title, n.UpdatedAt.Format("2006-01-02 15:04")})
	}
	return t
}

func newNotesListCmd(app *App) *cobra.Command {
	var projectID, cursor string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if all {
				var notes []model.Note
				next := ""
				for {
					page, err := client.ListNotes(cmd.Context(), projectID, next)
					if err != nil {
						return writeErr(cmd, err)
					}
					notes = append(notes, page.Results...)
					if page.Next == "" {
						break
					}
					next = page.Next
				}
				return writeOut(cmd, app, map[string]any{"data": notes}, notesTable(notes))
			}

			page, err := client.ListNotes(cmd.Context(), projectID, cursor)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := map[string]any{"data": page.Results}
			if page.Next != "" {
				out["meta"] = map[string]string{"next": page.Next}
			}
			return writeOut(cmd, app, out, notesTable(page.Results))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Page cursor from a previous call's meta.next")
	cmd.Flags().BoolVar(&all, "all", false, "Follow pagination and return every note")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newNotesCreateCmd(app *App) *cobra.Command {
	var projectID, title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := client.CreateNote(cmd.Context(), projectID, title, content)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n}, notesTable([]model.Note{n}))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Markdown content")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesUpdateCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "update <note-id>",
		Short: "Update a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var patch api.NotePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			n, err := client.UpdateNote(cmd.Context(), args[0], patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n}, notesTable([]model.Note{n}))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New markdown content")
	return cmd
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirmPrompt(cmd, "Delete note "+args[0]+"? [y/N] ")
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteNote(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}}, nil)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
