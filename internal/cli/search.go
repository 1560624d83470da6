package cli

import (
	"fmt"

	"github.com/Yugz29/DevNote/internal/format"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes, snippets and todos across projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var k model.Kind
			switch kind {
			case "":
			case string(model.KindNotes), string(model.KindSnippets), string(model.KindTodos):
				k = model.Kind(kind)
			default:
				return fmt.Errorf("unknown kind %q (notes|snippets|todos)", kind)
			}

			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := client.Search(cmd.Context(), args[0], k)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res}, searchTable(res))
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Limit to one kind (notes|snippets|todos)")
	return cmd
}

func searchTable(res model.SearchResults) *format.Table {
	t := &format.Table{Headers: []string{"KIND", "ID", "PROJECT", "TITLE"}}
	for _, n := range res.Notes {
		t.Rows = append(t.Rows, []string{"note", n.ID, n.ProjectID, n.Title})
	}
	for _, s := range res.Snippets {
		t.Rows = append(t.Rows, []string{"snippet", s.ID, s.ProjectID, s.Title})
	}
	for _, td := range res.Todos {
		t.Rows = append(t.Rows, []string{"todo", td.ID, td.ProjectID, td.Title})
	}
	return t
}
