package api

import (
	"net/http"
)

// handleChat answers the last user message of the conversation. Remote
// failures fall back to local answers inside the assistant, so the only
// errors here are bad requests.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Assistant is disabled")
		return
	}
	var req ChatRequest
	if s.NewRequestDecoder(w, r).DecodeJSON(&req).Validate(&req).RespondError() {
		return
	}

	ans, err := s.assistant.Reply(r.Context(), req.Messages)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, ChatResponse{Reply: ans.Text, Source: ans.Source, Topic: ans.Topic})
}
