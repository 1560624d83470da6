package api

import (
	"context"
	"net/http"

	"github.com/Yugz29/DevNote/internal/model"
)

// ListNotes fetches one page of a project's notes. Pass the previous page's
// Next value as cursor to continue; an empty cursor fetches the first page.
func (c *Client) ListNotes(ctx context.Context, projectID, cursor string) (model.Page[model.Note], error) {
	ref := "projects/" + projectID + "/notes/"
	if cursor != "" {
		ref = cursor
	}
	return listPage[model.Note](ctx, c, ref)
}

func (c *Client) CreateNote(ctx context.Context, projectID, title, content string) (model.Note, error) {
	payload := map[string]string{"title": title, "content": content}
	var n model.Note
	if err := c.do(ctx, http.MethodPost, "projects/"+projectID+"/notes/", payload, &n); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (model.Note, error) {
	var n model.Note
	if err := c.do(ctx, http.MethodGet, "notes/"+id+"/", nil, &n); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (c *Client) UpdateNote(ctx context.Context, id string, patch NotePatch) (model.Note, error) {
	var n model.Note
	if err := c.do(ctx, http.MethodPatch, "notes/"+id+"/", patch, &n); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "notes/"+id+"/", nil, nil)
}
