package client

import (
	"context"
	"fmt"
)

// SearchOptions tunes a batched search. Options is forwarded to the
// server as-is.
type SearchOptions struct {
	IncludeAnswers bool
	Options        map[string]any
}

// QueryResult holds the server's answer for one query of a batch.
type QueryResult struct {
	Query   string       `json:"query"`
	Answer  string       `json:"answer,omitempty"`
	Results []PageResult `json:"results"`
}

// PageResult is a single ranked page within a query's results.
type PageResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type searchRequest struct {
	Queries        []string       `json:"queries"`
	IncludeAnswers bool           `json:"includeAnswers"`
	Options        map[string]any `json:"options"`
}

// Search runs an ordered batch of queries in a single request. The
// server fans the batch out and returns one QueryResult per query, in
// input order. opts may be nil.
func (c *Client) Search(ctx context.Context, queries []string, opts *SearchOptions) ([]QueryResult, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: queries must not be empty", ErrInvalidArgument)
	}
	if opts == nil {
		opts = &SearchOptions{}
	}

	body := searchRequest{
		Queries:        queries,
		IncludeAnswers: opts.IncludeAnswers,
		Options:        opts.Options,
	}
	if body.Options == nil {
		body.Options = map[string]any{}
	}

	var results []QueryResult
	if err := c.postJSON(ctx, "Search", "/search", body, &results); err != nil {
		return nil, err
	}
	return results, nil
}
