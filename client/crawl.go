package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/oblien/search/crawl"
	"go.uber.org/zap"
)

// CrawlOptions is a free-form option set forwarded to the crawl
// endpoint. Caller values override the defaults field-by-field.
type CrawlOptions map[string]any

// defaultCrawlOptions is the baseline sent when the caller leaves a
// field unset.
func defaultCrawlOptions() CrawlOptions {
	return CrawlOptions{
		"type":                    "deep",
		"thinking":                true,
		"allow_thinking_callback": true,
		"stream_text":             true,
	}
}

type crawlRequest struct {
	Instructions string       `json:"instructions"`
	Options      CrawlOptions `json:"options"`
}

// Crawl starts a server-side crawl guided by the given instructions and
// consumes its event stream until it ends. Every event except the
// terminal crawl_end is passed to handler in arrival order; handler may
// be nil to discard them. The returned Result comes from the crawl_end
// event, or defaults to success when the stream ends without one. An
// error-typed event aborts the stream and surfaces as *crawl.Error.
func (c *Client) Crawl(ctx context.Context, instructions string, opts CrawlOptions, handler crawl.Handler) (*crawl.Result, error) {
	if strings.TrimSpace(instructions) == "" {
		return nil, fmt.Errorf("%w: instructions must not be empty", ErrInvalidArgument)
	}

	options := defaultCrawlOptions()
	for key, value := range opts {
		options[key] = value
	}

	req, err := c.newRequest(ctx, "/search/crawl", crawlRequest{
		Instructions: instructions,
		Options:      options,
	})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	c.logger.Debug("starting crawl stream",
		zap.String("request_id", req.Header.Get("request-id")))

	resp, err := c.httpStream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError("Crawl", resp)
	}

	reader := crawl.NewReader(handler, c.logger)
	if err := reader.Consume(resp.Body); err != nil {
		return nil, err
	}

	result := reader.Result()
	c.logger.Debug("crawl stream finished",
		zap.Bool("success", result.Success),
		zap.Float64("time_took", result.TimeTook))
	return &result, nil
}
