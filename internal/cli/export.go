package cli

import (
	"context"

	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/export"
	"github.com/Yugz29/DevNote/internal/format"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Export a project's notes, snippets and todos as markdown files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := exportProject(cmd.Context(), client, args[0], toDir, overwrite)
			if err != nil {
				return writeErr(cmd, err)
			}

			tbl := &format.Table{Headers: []string{"FILE"}}
			for _, p := range res.Written {
				tbl.Rows = append(tbl.Rows, []string{p})
			}
			return writeOut(cmd, app, map[string]any{"data": res}, tbl)
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func exportProject(ctx context.Context, client *api.Client, projectID, toDir string, overwrite bool) (export.WriteResult, error) {
	project, err := client.GetProject(ctx, projectID)
	if err != nil {
		return export.WriteResult{}, err
	}

	var notes []model.Note
	cursor := ""
	for {
		page, err := client.ListNotes(ctx, projectID, cursor)
		if err != nil {
			return export.WriteResult{}, err
		}
		notes = append(notes, page.Results...)
		if page.Next == "" {
			break
		}
		cursor = page.Next
	}

	var snippets []model.Snippet
	cursor = ""
	for {
		page, err := client.ListSnippets(ctx, projectID, cursor)
		if err != nil {
			return export.WriteResult{}, err
		}
		snippets = append(snippets, page.Results...)
		if page.Next == "" {
			break
		}
		cursor = page.Next
	}

	todos, err := client.ListAllTodos(ctx, projectID)
	if err != nil {
		return export.WriteResult{}, err
	}

	opt := export.WriteOptions{Overwrite: overwrite}
	var all export.WriteResult

	res, err := export.WriteNotes(toDir, project.Title, notes, opt)
	if err != nil {
		return export.WriteResult{}, err
	}
	all.Written = append(all.Written, res.Written...)

	res, err = export.WriteSnippets(toDir, project.Title, snippets, opt)
	if err != nil {
		return export.WriteResult{}, err
	}
	all.Written = append(all.Written, res.Written...)

	if len(todos) > 0 {
		res, err = export.WriteTodos(toDir, project.Title, todos, opt)
		if err != nil {
			return export.WriteResult{}, err
		}
		all.Written = append(all.Written, res.Written...)
	}

	return all, nil
}
