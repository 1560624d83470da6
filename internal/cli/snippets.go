package cli

import (
	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/format"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/spf13/cobra"
)

func newSnippetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippets",
		Short: "Snippet commands",
	}
	cmd.AddCommand(newSnippetsListCmd(app))
	cmd.AddCommand(newSnippetsCreateCmd(app))
	cmd.AddCommand(newSnippetsUpdateCmd(app))
	cmd.AddCommand(newSnippetsDeleteCmd(app))
	return cmd
}

func snippetsTable(snippets []model.Snippet) *format.Table {
	t := &format.Table{Headers: []string{"ID", "TITLE", "LANGUAGE", "UPDATED"}}
	for _, s := range snippets {
		t.Rows = append(t.Rows, []string{s.ID, s.Title, s.Language, s.UpdatedAt.Format("2006-01-02 15:04")})
	}
	return t
}

func newSnippetsListCmd(app *App) *cobra.Command {
	var projectID, cursor string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snippets in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if all {
				var snippets []model.Snippet
				next := ""
				for {
					page, err := client.ListSnippets(cmd.Context(), projectID, next)
					if err != nil {
						return writeErr(cmd, err)
					}
					snippets = append(snippets, page.Results...)
					if page.Next == "" {
						break
					}
					next = page.Next
				}
				return writeOut(cmd, app, map[string]any{"data": snippets}, snippetsTable(snippets))
			}

			page, err := client.ListSnippets(cmd.Context(), projectID, cursor)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := map[string]any{"data": page.Results}
			if page.Next != "" {
				out["meta"] = map[string]string{"next": page.Next}
			}
			return writeOut(cmd, app, out, snippetsTable(page.Results))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Page cursor from a previous call's meta.next")
	cmd.Flags().BoolVar(&all, "all", false, "Follow pagination and return every snippet")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newSnippetsCreateCmd(app *App) *cobra.Command {
	var projectID, title, language, content, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a snippet",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := client.CreateSnippet(cmd.Context(), projectID, title, language, content, description)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": s}, snippetsTable([]model.Snippet{s}))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&title, "title", "", "Snippet title")
	cmd.Flags().StringVar(&language, "language", "", "Language tag (used for grouping)")
	cmd.Flags().StringVar(&content, "content", "", "Snippet body")
	cmd.Flags().StringVar(&description, "description", "", "Short description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newSnippetsUpdateCmd(app *App) *cobra.Command {
	var title, language, content, description string

	cmd := &cobra.Command{
		Use:   "update <snippet-id>",
		Short: "Update a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var patch api.SnippetPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("language") {
				patch.Language = &language
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			s, err := client.UpdateSnippet(cmd.Context(), args[0], patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": s}, snippetsTable([]model.Snippet{s}))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&language, "language", "", "New language tag")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newSnippetsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <snippet-id>",
		Short: "Delete a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirmPrompt(cmd, "Delete snippet "+args[0]+"? [y/N] ")
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
			if err := client.DeleteSnippet(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}}, nil)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
