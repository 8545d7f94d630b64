package client

import (
	"context"
	"fmt"
)

// Page describes one extraction target: a URL plus the natural-language
// instructions for what to pull out of it. Quality is an optional
// server-side quality level tag.
type Page struct {
	URL     string   `json:"url"`
	Details []string `json:"details"`
	Quality string   `json:"quality,omitempty"`
}

// ExtractError reports a per-page failure within an otherwise
// successful extraction batch.
type ExtractError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// ExtractResult is the response for an extraction batch. Data entries
// are kept loose: their shape depends entirely on the instructions
// given, and new server fields must not break older clients.
type ExtractResult struct {
	Success  bool             `json:"success"`
	Data     []map[string]any `json:"data"`
	Errors   []ExtractError   `json:"errors"`
	TimeTook float64          `json:"time_took"`
}

type extractRequest struct {
	Pages   []Page         `json:"pages"`
	Options map[string]any `json:"options"`
}

// Extract pulls structured information out of the given pages. Every
// page needs a URL and at least one instruction; validation happens
// locally and names the first offending entry before anything is sent.
// opts may be nil.
func (c *Client) Extract(ctx context.Context, pages []Page, opts map[string]any) (*ExtractResult, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: pages must not be empty", ErrInvalidArgument)
	}
	for i, page := range pages {
		if page.URL == "" {
			return nil, fmt.Errorf("%w: pages[%d]: missing url", ErrInvalidArgument, i)
		}
		if len(page.Details) == 0 {
			return nil, fmt.Errorf("%w: pages[%d]: missing details", ErrInvalidArgument, i)
		}
	}
	if opts == nil {
		opts = map[string]any{}
	}

	body := extractRequest{Pages: pages, Options: opts}

	var result ExtractResult
	if err := c.postJSON(ctx, "Extract", "/search/extract", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
