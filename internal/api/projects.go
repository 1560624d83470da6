package api

import (
	"context"
	"net/http"

	"github.com/Yugz29/DevNote/internal/model"
)

func (c *Client) ListProjects(ctx context.Context, cursor string) (model.Page[model.Project], error) {
	ref := "projects/"
	if cursor != "" {
		ref = cursor
	}
	return listPage[model.Project](ctx, c, ref)
}

// ListAllProjects follows pagination until the project list is exhausted.
func (c *Client) ListAllProjects(ctx context.Context) ([]model.Project, error) {
	var all []model.Project
	cursor := ""
	for {
		page, err := c.ListProjects(ctx, cursor)
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

func (c *Client) CreateProject(ctx context.Context, title, description string) (model.Project, error) {
	payload := map[string]string{"title": title, "description": description}
	var p model.Project
	if err := c.do(ctx, http.MethodPost, "projects/", payload, &p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	if err := c.do(ctx, http.MethodGet, "projects/"+id+"/", nil, &p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// ProjectPatch carries partial updates; nil fields are left untouched.
type ProjectPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (model.Project, error) {
	var p model.Project
	if err := c.do(ctx, http.MethodPatch, "projects/"+id+"/", patch, &p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "projects/"+id+"/", nil, nil)
}
