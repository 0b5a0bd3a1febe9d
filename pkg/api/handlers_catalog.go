package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/algorithms"
	"github.com/dd0wney/cluso-algoviz/pkg/health"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	res := s.health.Run(r.Context(), health.ScopeHealth)
	checks := make(map[string]any, len(res.Checks))
	for _, c := range res.Checks {
		checks[c.Name] = c
	}

	s.respondJSON(w, res.HTTPStatus(), HealthResponse{
		Status:    string(res.Status),
		Timestamp: time.Now(),
		Version:   s.opts.Version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Sessions:  s.sessions.Len(),
		Checks:    checks,
	})
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, KindsResponse{Kinds: model.Kinds()})
}

func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	kind := model.Kind(r.PathValue("kind"))
	specs := algorithms.Operations(kind)
	if len(specs) == 0 {
		s.respondError(w, http.StatusNotFound, "unknown structure "+string(kind))
		return
	}
	s.respondJSON(w, http.StatusOK, OperationsResponse{Kind: kind, Operations: operationInfos(specs)})
}

// handleSample returns the built-in data set for a kind.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	req := session.CreateRequest{
		Kind:     r.PathValue("kind"),
		Sample:   true,
		Directed: r.URL.Query().Get("directed") == "true",
		Doubly:   r.URL.Query().Get("doubly") == "true",
		Order:    r.URL.Query().Get("order"),
	}
	structure, err := session.Build(req, nil)
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, structure)
}

// handleTrace runs one operation over a throwaway structure and returns
// its trace.
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	var req TraceRequest
	if s.NewRequestDecoder(w, r).DecodeJSON(&req).Validate(&req).RespondError() {
		return
	}

	sess, err := session.New(req.Structure, session.WithLogger(s.logger), session.WithMetrics(s.metrics))
	if err != nil {
		s.respondFailure(w, err)
		return
	}
	defer sess.Close()

	s.respondApply(w, sess, req.Operation)
}

// respondApply runs req on sess. Declined operations are not failures:
// they answer 200 with the trace that explains them.
func (s *Server) respondApply(w http.ResponseWriter, sess *session.Session, req session.Request) {
	res, err := sess.Apply(req)
	switch {
	case err == nil, res != nil && res.Outcome == session.OutcomeDeclined:
		s.respondJSON(w, http.StatusOK, toApplyResponse(res))
	case errors.Is(err, session.ErrBusy):
		s.respondFailure(w, err)
	case res != nil && res.Outcome == session.OutcomeRejected:
		s.respondError(w, http.StatusBadRequest, res.Notice)
	default:
		s.respondFailure(w, err)
	}
}

func operationInfos(specs []algorithms.OperationSpec) []OperationInfo {
	out := make([]OperationInfo, len(specs))
	for i, spec := range specs {
		out[i] = OperationInfo{
			Name:    spec.Name,
			Needs:   append([]string{}, spec.Needs...),
			Mutates: spec.Mutates,
			Listing: spec.Listing,
		}
	}
	return out
}
