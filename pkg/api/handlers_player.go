package api

import (
	"context"
	"net/http"

	"github.com/dd0wney/cluso-algoviz/pkg/session"
)

func (s *Server) handlePlayerState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	resp := playerResponse(sess)
	if resp == nil {
		s.respondError(w, http.StatusNotFound, "Nothing to play yet")
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handlePlayerAction drives the latest trace: play, pause, step or reset.
// Playback outlives the request; it stops at the last frame, on pause or
// when the session closes.
func (s *Server) handlePlayerAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	p := sess.Player()
	if p == nil {
		s.respondError(w, http.StatusConflict, "Nothing to play yet")
		return
	}

	switch action := r.PathValue("action"); action {
	case "play":
		if err := p.Play(context.WithoutCancel(r.Context()), sess.Delay()); err != nil {
			s.respondFailure(w, err)
			return
		}
	case "pause":
		p.Pause()
	case "step":
		p.Step()
	case "reset":
		p.Reset()
	default:
		s.respondError(w, http.StatusBadRequest, "unknown player action "+action)
		return
	}
	s.respondJSON(w, http.StatusOK, playerResponse(sess))
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req SpeedRequest
	if s.NewRequestDecoder(w, r).DecodeJSON(&req).Validate(&req).RespondError() {
		return
	}
	if err := sess.SetSpeed(req.Speed); err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"speed":    sess.Speed(),
		"delay_ms": sess.Delay().Milliseconds(),
	})
}

func playerResponse(sess *session.Session) *PlayerResponse {
	p := sess.Player()
	if p == nil {
		return nil
	}
	resp := &PlayerResponse{
		State:   p.State(),
		Cursor:  p.Cursor(),
		Frames:  p.Len(),
		Speed:   sess.Speed(),
		DelayMs: sess.Delay().Milliseconds(),
	}
	if f, ok := p.Current(); ok {
		resp.Frame = &f
	}
	return resp
}
