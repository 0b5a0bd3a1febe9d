package api

import (
	"net/http"

	"github.com/dd0wney/cluso-algoviz/pkg/session"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req session.CreateRequest
	if s.NewRequestDecoder(w, r).DecodeJSON(&req).Validate(&req).RespondError() {
		return
	}

	sess, err := s.sessions.Create(req)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	w.Header().Set("Location", "/api/sessions/"+sess.ID())
	s.respondJSON(w, http.StatusCreated, s.sessionResponse(sess))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.List()
	s.respondJSON(w, http.StatusOK, SessionListResponse{Sessions: ids, Count: len(ids)})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, s.sessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadStructure replaces the session's structure. The kind may
// change; the latest trace is discarded.
func (s *Server) handleLoadStructure(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req session.CreateRequest
	if s.NewRequestDecoder(w, r).DecodeJSON(&req).Validate(&req).RespondError() {
		return
	}
	if err := sess.Load(req); err != nil {
		s.respondFailure(w, err)
		return
	}
	if req.Speed != 0 {
		if err := sess.SetSpeed(req.Speed); err != nil {
			s.respondFailure(w, err)
			return
		}
	}
	s.respondJSON(w, http.StatusOK, s.sessionResponse(sess))
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req session.Request
	if s.NewRequestDecoder(w, r).DecodeJSON(&req).RespondError() {
		return
	}
	s.respondApply(w, sess, req)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	view, err := sess.View()
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) sessionResponse(sess *session.Session) SessionResponse {
	specs := sess.Operations()
	ops := make([]string, len(specs))
	for i, spec := range specs {
		ops[i] = spec.Name
	}

	resp := SessionResponse{
		ID:         sess.ID(),
		Kind:       sess.Kind(),
		Created:    sess.Created(),
		Speed:      sess.Speed(),
		Structure:  sess.Structure(),
		Operations: ops,
		Player:     playerResponse(sess),
	}
	if blocked := sess.Unavailable(); len(blocked) > 0 {
		resp.Unavailable = blocked
	}
	if last := sess.Last(); last != nil {
		// The trace is served by the player endpoints; keep the summary small.
		summary := toApplyResponse(last)
		summary.Trace = nil
		resp.Last = summary
	}
	return resp
}
