package cli

import (
	"fmt"

	"github.com/Yugz29/DevNote/internal/api"
	"github.com/Yugz29/DevNote/internal/format"
	"github.com/Yugz29/DevNote/internal/model"

	"github.com/spf13/cobra"
)

func newTodosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Todo commands",
	}
	cmd.AddCommand(newTodosListCmd(app))
	cmd.AddCommand(newTodosCreateCmd(app))
	cmd.AddCommand(newTodosUpdateCmd(app))
	cmd.AddCommand(newTodosAdvanceCmd(app))
	cmd.AddCommand(newTodosDeleteCmd(app))
	return cmd
}

func todosTable(todos []model.Todo) *format.Table {
	t := &format.Table{Headers: []string{"ID", "TITLE", "STATUS", "PRIORITY"}}
	for _, td := range todos {
		t.Rows = append(t.Rows, []string{td.ID, td.Title, string(td.Status), string(td.Priority)})
	}
	return t
}

func parseStatus(s string) (model.TodoStatus, error) {
	switch model.TodoStatus(s) {
	case model.StatusPending, model.StatusInProgress, model.StatusDone:
		return model.TodoStatus(s), nil
	}
	return "", fmt.Errorf("unknown status %q (pending|in_progress|done)", s)
}

func parsePriority(s string) (model.TodoPriority, error) {
	switch model.TodoPriority(s) {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return model.TodoPriority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q (low|medium|high)", s)
}

func newTodosListCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every todo in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			todos, err := client.ListAllTodos(cmd.Context(), projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": todos}, todosTable(todos))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTodosCreateCmd(app *App) *cobra.Command {
	var projectID, title, description, status, priority string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			pr, err := parsePriority(priority)
			if err != nil {
				return err
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			td, err := client.CreateTodo(cmd.Context(), projectID, title, description, st, pr)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": td}, todosTable([]model.Todo{td}))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&title, "title", "", "Todo title")
	cmd.Flags().StringVar(&description, "description", "", "Details")
	cmd.Flags().StringVar(&status, "status", string(model.StatusPending), "pending|in_progress|done")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "low|medium|high")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTodosUpdateCmd(app *App) *cobra.Command {
	var title, description, status, priority string

	cmd := &cobra.Command{
		Use:   "update <todo-id>",
		Short: "Update a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var patch api.TodoPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("status") {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if cmd.Flags().Changed("priority") {
				pr, err := parsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &pr
			}
			td, err := client.UpdateTodo(cmd.Context(), args[0], patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": td}, todosTable([]model.Todo{td}))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New details")
	cmd.Flags().StringVar(&status, "status", "", "pending|in_progress|done")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high")
	return cmd
}

func newTodosAdvanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <todo-id>",
		Short: "Cycle a todo's status (pending → in_progress → done → pending)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			td, err := client.GetTodo(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			next := td.Status.Next()
			updated, err := client.UpdateTodo(cmd.Context(), args[0], api.TodoPatch{Status: &next})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated}, todosTable([]model.Todo{updated}))
		},
	}
}

func newTodosDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <todo-id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirmPrompt(cmd, "Delete todo "+args[0]+"? [y/N] ")
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
			if err := client.DeleteTodo(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}}, nil)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
