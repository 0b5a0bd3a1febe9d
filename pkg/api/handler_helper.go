package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/player"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
	"github.com/dd0wney/cluso-algoviz/pkg/validation"
)

// requestDecoder decodes and validates request bodies.
// It provides a fluent interface for common request handling patterns.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

// NewRequestDecoder creates a new request decoder for the given request.
func (s *Server) NewRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{
		r:      r,
		w:      w,
		server: s,
	}
}

// DecodeJSON decodes the request body into the provided struct.
// Unknown fields are rejected. Check HasError() after calling.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	dec := json.NewDecoder(rd.r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rd.err = fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
			rd.statusCode = http.StatusRequestEntityTooLarge
			return rd
		}
		rd.err = fmt.Errorf("invalid request body: %w", err)
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// Validate runs the struct's validate tags.
func (rd *requestDecoder) Validate(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := validation.Struct(v); err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// HasError returns true if any step in the chain failed.
func (rd *requestDecoder) HasError() bool {
	return rd.err != nil
}

// RespondError writes the error response if there was an error.
// Returns true if an error was written.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.statusCode, model.NoticeOf(rd.err))
	return true
}

// session resolves the {id} path value, writing a 404 when it is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.respondFailure(w, err)
		return nil, false
	}
	return sess, true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrBusy), errors.Is(err, player.ErrPlaying):
		return http.StatusConflict
	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusServiceUnavailable
	case model.IsInvalidInput(err):
		return http.StatusBadRequest
	case model.IsNotFound(err), model.IsEmpty(err), model.IsDuplicate(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondFailure writes err with the status statusFor picks. Internal
// errors are logged and replaced by a generic message.
func (s *Server) respondFailure(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := model.NoticeOf(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", logging.Error(err))
		msg = "internal error"
	}
	s.respondError(w, code, msg)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("response encoding failed", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
