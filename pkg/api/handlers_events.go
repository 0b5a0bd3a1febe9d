package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/logging"
)

const eventsKeepAlive = 15 * time.Second

// handleEvents streams the frames the session's players show as
// server-sent events until the client disconnects or the broker closes.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.opts.Events == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Event streaming is disabled")
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sub, err := s.opts.Events.Subscribe(r.Context(), sess.ID())
	if err != nil {
		s.respondError(w, http.StatusServiceUnavailable, "Event streaming is shutting down")
		return
	}
	defer sub.Unsubscribe()

	rc := http.NewResponseController(w)
	// Streams outlive the server write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": subscribed\n\n")
	if err := rc.Flush(); err != nil {
		s.logger.Warn("event stream not flushable", logging.Error(err))
		return
	}

	keepAlive := time.NewTicker(eventsKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
		case ev, open := <-sub.Channel():
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.logger.Warn("frame event encoding failed", logging.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: frame\nid: %d\ndata: %s\n\n", ev.Index, data)
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
