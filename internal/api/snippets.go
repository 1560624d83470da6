package api

import (
	"context"
	"net/http"

	"github.com/Yugz29/DevNote/internal/model"
)

func (c *Client) ListSnippets(ctx context.Context, projectID, cursor string) (model.Page[model.Snippet], error) {
	ref := "projects/" + projectID + "/snippets/"
	if cursor != "" {
		ref = cursor
	}
	return listPage[model.Snippet](ctx, c, ref)
}

func (c *Client) CreateSnippet(ctx context.Context, projectID, title, language, content, description string) (model.Snippet, error) {
	payload := map[string]string{
		"title":       title,
		"language":    language,
		"content":     content,
		"description": description,
	}
	var s model.Snippet
	if err := c.do(ctx, http.MethodPost, "projects/"+projectID+"/snippets/", payload, &s); err != nil {
		return model.Snippet{}, err
	}
	return s, nil
}

func (c *Client) GetSnippet(ctx context.Context, id string) (model.Snippet, error) {
	var s model.Snippet
	if err := c.do(ctx, http.MethodGet, "snippets/"+id+"/", nil, &s); err != nil {
		return model.Snippet{}, err
	}
	return s, nil
}

type SnippetPatch struct {
	Title       *string `json:"title,omitempty"`
	Language    *string `json:"language,omitempty"`
	Content     *string `json:"content,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) UpdateSnippet(ctx context.Context, id string, patch SnippetPatch) (model.Snippet, error) {
	var s model.Snippet
	if err := c.do(ctx, http.MethodPatch, "snippets/"+id+"/", patch, &s); err != nil {
		return model.Snippet{}, err
	}
	return s, nil
}

func (c *Client) DeleteSnippet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "snippets/"+id+"/", nil, nil)
}
