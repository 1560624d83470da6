package api

import (
	"context"
	"net/http"

	"github.com/Yugz29/DevNote/internal/model"
)

func (c *Client) ListTodos(ctx context.Context, projectID, cursor string) (model.Page[model.Todo], error) {
	ref := "projects/" + projectID + "/todos/"
	if cursor != "" {
		ref = cursor
	}
	return listPage[model.Todo](ctx, c, ref)
}

// ListAllTodos follows pagination until the whole collection is loaded.
// Grouping by status needs complete data, so the todo views never page.
func (c *Client) ListAllTodos(ctx context.Context, projectID string) ([]model.Todo, error) {
	var all []model.Todo
	cursor := ""
	for {
		page, err := c.ListTodos(ctx, projectID, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if page.Next == "" {
			return all, nil
		}
		cursor = page.Next
	}
}

func (c *Client) CreateTodo(ctx context.Context, projectID, title, description string, status model.TodoStatus, priority model.TodoPriority) (model.Todo, error) {
	payload := map[string]string{
		"title":       title,
		"description": description,
		"status":      string(status),
		"priority":    string(priority),
	}
	var t model.Todo
	if err := c.do(ctx, http.MethodPost, "projects/"+projectID+"/todos/", payload, &t); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

func (c *Client) GetTodo(ctx context.Context, id string) (model.Todo, error) {
	var t model.Todo
	if err := c.do(ctx, http.MethodGet, "todos/"+id+"/", nil, &t); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

type TodoPatch struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Status      *model.TodoStatus   `json:"status,omitempty"`
	Priority    *model.TodoPriority `json:"priority,omitempty"`
}

func (c *Client) UpdateTodo(ctx context.Context, id string, patch TodoPatch) (model.Todo, error) {
	var t model.Todo
	if err := c.do(ctx, http.MethodPatch, "todos/"+id+"/", patch, &t); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "todos/"+id+"/", nil, nil)
}
