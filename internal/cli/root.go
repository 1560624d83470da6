package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/cache"
	"github.com/Yugz29/DevNote/internal/config"
	"github.com/Yugz29/DevNote/internal/format"
	"github.com/Yugz29/DevNote/internal/prefs"
	"github.com/Yugz29/DevNote/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ServerURL  string
	Format     string
	PrettyJSON bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "devnote",
		Short:        "DevNote: notes, snippets and todos for your projects",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  devnote

  # Scriptable commands
  devnote login --email me@example.com
  devnote projects list
  devnote notes list --project <id> --all
  devnote todos advance <id>
  devnote search "sql join" --kind snippets
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if app.ServerURL != "" {
			cfg.ServerURL = app.ServerURL
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", envOr("DEVNOTE_SERVER_URL", ""), "API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DEVNOTE_FORMAT", "json"), "Output format (json|table)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newSnippetsCmd(app))
	cmd.AddCommand(newTodosCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, err := newClient(app)
	if err != nil {
		return err
	}
	store := prefs.Open(app.cfg.PrefsPath())
	defer store.Close()
	return tui.Run(client, store, cache.Open(app.cfg.CacheDir()))
}

func newClient(app *App) (*api.Client, error) {
	timeout := app.cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return api.New(app.cfg.ServerURL, timeout, app.cfg.SessionPath())
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any, tbl *format.Table) error {
	return format.Write(cmd.OutOrStdout(), v, tbl, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	if api.IsAuthError(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "not logged in (or session expired); run `devnote login`")
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
