package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"transportmarket/internal/logx"
	"transportmarket/internal/stream"
)

// streamTopics are the change topics a client may tail.
var streamTopics = map[string]bool{
	"orders":   true,
	"messages": true,
}

// StreamHandler tails record-change notifications over server-sent events so
// open chat and thread views refresh without polling.
type StreamHandler struct {
	hub    *stream.Hub
	logger logx.Logger
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(hub *stream.Hub, logger logx.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, logger: logger}
}

// Tail handles GET /streams/{topic}. It holds the connection open and writes
// one SSE event per change until the client disconnects.
func (h *StreamHandler) Tail(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	topic := chi.URLParam(r, "topic")
	if !streamTopics[topic] {
		writeError(w, r, http.StatusNotFound, "unknown stream topic")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch, cancel := h.hub.Subscribe(topic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case c, open := <-ch:
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", c.Topic, c.Payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
