package crawl

import (
	"encoding/json"
	"fmt"
)

// Well-known event types emitted by the crawl stream. The server is free
// to add new types; anything not listed here is still delivered to the
// caller's handler.
const (
	TypePageCrawled = "page_crawled"
	TypeContent     = "content"
	TypeThinking    = "thinking"
	TypeError       = "error"
	TypeCrawlEnd    = "crawl_end"
)

// Event is a single message from the crawl stream. The Type discriminant
// is required; every other top-level JSON member is kept in Fields so
// unknown event shapes survive a round through the reader intact.
type Event struct {
	Type   string
	Fields map[string]any
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	typ, _ := raw["type"].(string)
	delete(raw, "type")
	e.Type = typ
	e.Fields = raw
	return nil
}

// Str returns the named field as a string, or "" if it is absent or not
// a string.
func (e Event) Str(key string) string {
	v, _ := e.Fields[key].(string)
	return v
}

// Handler receives stream events in arrival order. It is invoked
// synchronously on the goroutine driving the read loop, so a slow
// handler delays subsequent chunk processing.
type Handler func(Event)

// Result is the terminal outcome of a crawl, taken from the last
// crawl_end event. Streams that end without one reduce to
// {Success: true, TimeTook: 0}.
type Result struct {
	Success  bool    `json:"success"`
	TimeTook float64 `json:"time_took"`
}

// Error reports a crawl aborted by the server through an error-typed
// stream event. It is returned directly from the read loop and is never
// confused with a malformed line, which is skipped instead.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("crawl aborted by server: %s", e.Message)
}
