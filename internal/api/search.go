package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Yugz29/DevNote/internal/model"
)

// Search runs the server's cross-project search. kind narrows the result to
// one collection type; empty searches everything.
func (c *Client) Search(ctx context.Context, query string, kind model.Kind) (model.SearchResults, error) {
	params := url.Values{}
	params.Set("q", query)
	if kind != "" {
		params.Set("type", string(kind))
	}
	var res model.SearchResults
	if err := c.do(ctx, http.MethodGet, "search/?"+params.Encode(), nil, &res); err != nil {
		return model.SearchResults{}, err
	}
	return res, nil
}
