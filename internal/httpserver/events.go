package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cosmic-word/internal/sse"
)

// keepAliveInterval spaces comment lines that keep proxies from closing an
// idle stream.
const keepAliveInterval = 15 * time.Second

// handleEvents streams session events as server-sent events. The first
// message is a "snapshot" event so the client can render before any change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}
	e := entryFrom(r)

	// Subscribe before taking the snapshot so nothing falls in between.
	msgs, cancel := e.Hub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	snap, err := json.Marshal(e.Session.Snapshot())
	if err == nil {
		writeEvent(w, sse.Message{Event: "snapshot", Data: snap})
		flusher.Flush()
	}

	log.Debug().Str("session", e.ID).Int("subscribers", e.Hub.Clients()).Msg("event stream opened")
	defer log.Debug().Str("session", e.ID).Msg("event stream closed")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-msgs:
			if !open {
				return
			}
			writeEvent(w, msg)
			flusher.Flush()
		case <-keepAlive.C:
			_, _ = fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, msg sse.Message) {
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
}
