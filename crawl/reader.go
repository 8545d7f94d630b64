package crawl

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"
)

// dataPrefix marks a payload-carrying line; everything else on the
// stream (comments, keep-alives, blank separators) is ignored.
var dataPrefix = []byte("data: ")

// Reader incrementally turns a chunked crawl response body into events.
// Chunks are appended to an internal buffer and complete
// newline-terminated lines are extracted as they become available, so a
// data: line split across two network chunks is reassembled rather than
// dropped. A Reader holds per-call state only and must not be reused
// across crawls.
type Reader struct {
	handler Handler
	logger  *zap.Logger
	buf     bytes.Buffer
	end     *Result
}

func NewReader(handler Handler, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		handler: handler,
		logger:  logger,
	}
}

// Feed appends one received chunk and processes every complete line it
// makes available. A trailing partial line stays buffered for the next
// chunk. It returns *Error as soon as an error-typed event is seen;
// further feeding is undefined after that.
func (r *Reader) Feed(chunk []byte) error {
	r.buf.Write(chunk)
	for {
		raw := r.buf.Bytes()
		idx := bytes.IndexByte(raw, '\n')
		if idx < 0 {
			return nil
		}
		line := bytes.TrimSuffix(raw[:idx], []byte("\r"))
		if err := r.processLine(line); err != nil {
			return err
		}
		r.buf.Next(idx + 1)
	}
}

// Consume drives Feed from a response body until EOF. The caller keeps
// ownership of src and is responsible for closing it on every exit path.
func (r *Reader) Consume(src io.Reader) error {
	chunk := make([]byte, 4096)
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			if ferr := r.Feed(chunk[:n]); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (r *Reader) processLine(line []byte) error {
	if !bytes.HasPrefix(line, dataPrefix) {
		return nil
	}
	payload := line[len(dataPrefix):]

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		// Malformed payloads are not fatal; the stream carries on.
		r.logger.Debug("skipping malformed stream line", zap.Error(err))
		return nil
	}

	switch event.Type {
	case TypeError:
		msg := event.Str("error")
		if msg == "" {
			msg = "unknown error"
		}
		return &Error{Message: msg}
	case TypeCrawlEnd:
		var envelope struct {
			Data Result `json:"data"`
		}
		if err := json.Unmarshal(payload, &envelope); err != nil {
			r.logger.Debug("skipping malformed crawl_end payload", zap.Error(err))
			return nil
		}
		// Last one wins if the server sends more than one.
		r.end = &envelope.Data
	default:
		if r.handler != nil {
			r.handler(event)
		}
	}
	return nil
}

// Result reduces the stream to its terminal outcome: the payload of the
// last crawl_end event, or the default when the stream ended without one.
func (r *Reader) Result() Result {
	if r.end != nil {
		return *r.end
	}
	return Result{Success: true, TimeTook: 0}
}
