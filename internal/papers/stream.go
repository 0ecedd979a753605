package papers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StreamWriter serializes pipeline events onto a server-sent-events
// response. Each event is one JSON object tagged by a "type" field,
// flushed immediately so the client sees progress while generation is
// still running.
type StreamWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	req     *http.Request
}

func NewStreamWriter(w http.ResponseWriter, r *http.Request) (*StreamWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &StreamWriter{w: w, flusher: flusher, req: r}, nil
}

// Send writes one event and flushes. Returns the client-disconnect error
// if the request context is already done.
func (s *StreamWriter) Send(event any) error {
	if err := s.req.Context().Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
