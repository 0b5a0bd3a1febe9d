package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-algoviz/pkg/algorithms"
	"github.com/dd0wney/cluso-algoviz/pkg/events"
	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/player"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
	"github.com/dd0wney/cluso-algoviz/pkg/validation"
	"github.com/dd0wney/cluso-algoviz/pkg/visualization"
)

// New builds the structure described by req and wraps it in a session.
func New(req CreateRequest, opts ...Option) (*Session, error) {
	s := &Session{
		id:      uuid.New().String(),
		created: time.Now(),
		speed:   validation.DefaultOrInt(req.Speed, player.DefaultSpeed),
		layout:  visualization.DefaultConfig(),
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	structure, err := Build(req, s.layout)
	if err != nil {
		return nil, err
	}
	s.structure = structure
	s.logger = s.logger.With(logging.SessionID(s.id), logging.Structure(string(structure.Kind())))
	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
	s.logger.Info("session created", logging.Count(structure.Len()))
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Created returns the creation time.
func (s *Session) Created() time.Time { return s.created }

// Kind returns the structure family of the session.
func (s *Session) Kind() model.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.structure.Kind()
}

// Structure returns a copy of the live structure.
func (s *Session) Structure() model.Structure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.structure.Clone()
}

// Last returns the result of the latest operation, or nil.
func (s *Session) Last() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Player returns the player of the latest trace, or nil before the first
// operation.
func (s *Session) Player() *player.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player
}

// Speed returns the speed slider position.
func (s *Session) Speed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speed
}

// SetSpeed moves the speed slider. It takes effect on the next Play.
func (s *Session) SetSpeed(speed int) error {
	if err := validation.ValidateSpeed(speed); err != nil {
		return err
	}
	s.mu.Lock()
	s.speed = speed
	s.mu.Unlock()
	return nil
}

// Delay returns the frame delay for the current speed.
func (s *Session) Delay() time.Duration {
	return player.DelayForSpeed(s.Speed())
}

// Operations lists the operations available for the session's structure.
func (s *Session) Operations() []algorithms.OperationSpec {
	return algorithms.Operations(s.Kind())
}

// Unavailable maps each operation the live structure currently blocks to
// the reason, for example a topological sort on a cyclic graph.
func (s *Session) Unavailable() map[string]string {
	current := s.Structure()
	out := make(map[string]string)
	for _, spec := range algorithms.Operations(current.Kind()) {
		if reason := algorithms.Unavailable(current, spec.Name); reason != "" {
			out[spec.Name] = reason
		}
	}
	return out
}

// Apply runs one operation against the live structure.
//
// A completed operation replaces the live structure with the trace's final
// structure, tags cleared. A declined one (empty structure, missing key or
// position, cycle) keeps the previous structure and returns the error with
// the explanatory trace. Duplicates are declined without an error. Requests
// that fail validation never reach an engine and produce no trace.
func (s *Session) Apply(req Request) (*Result, error) {
	if !s.op.TryLock() {
		return nil, ErrBusy
	}
	defer s.op.Unlock()

	current := s.Structure()
	kind := current.Kind()
	log := s.logger.With(logging.Operation(req.Operation))

	params, err := s.params(current, req)
	if err != nil {
		res := &Result{Operation: req.Operation, Outcome: OutcomeRejected, Notice: model.NoticeOf(err)}
		s.observe(kind, req.Operation, metrics.OutcomeInvalid, res)
		log.Warn("operation rejected", logging.Error(err))
		return res, err
	}

	start := time.Now()
	tr, runErr := algorithms.Run(current, req.Operation, params)
	res := &Result{Operation: req.Operation, Trace: tr, Elapsed: time.Since(start)}

	switch {
	case runErr == nil:
		res.Outcome = OutcomeApplied
		res.Notice = lastMessage(tr)
		s.observe(kind, req.Operation, metrics.OutcomeSuccess, res)
		log.Info("operation applied", logging.Frames(tr.Len()), logging.Latency(res.Elapsed))
	case model.IsDuplicate(runErr):
		res.Outcome = OutcomeDeclined
		res.Notice = model.NoticeOf(runErr)
		s.observe(kind, req.Operation, metrics.OutcomeDuplicate, res)
		log.Info("duplicate ignored", logging.String("notice", res.Notice))
		runErr = nil
	case tr != nil:
		res.Outcome = OutcomeDeclined
		res.Notice = model.NoticeOf(runErr)
		s.observe(kind, req.Operation, metrics.OutcomeDeclined, res)
		log.Info("operation declined", logging.String("notice", res.Notice))
	default:
		res.Outcome = OutcomeRejected
		res.Notice = model.NoticeOf(runErr)
		s.observe(kind, req.Operation, metrics.OutcomeInvalid, res)
		log.Warn("operation rejected", logging.Error(runErr))
	}

	s.adopt(res)
	return res, runErr
}

// adopt installs res as the latest result and, for applied operations, its
// final structure as the live one.
func (s *Session) adopt(res *Result) {
	var next *player.Player
	if res.Trace != nil {
		next = player.New(res.Trace, s.frameRenderer(res.Trace),
			player.WithLogger(s.logger),
			player.WithMetrics(s.metrics),
		)
	}

	s.mu.Lock()
	prev := s.player
	s.last = res
	if next != nil {
		s.player = next
	}
	if res.Outcome == OutcomeApplied {
		final := res.Trace.Final()
		final.ResetStates()
		s.structure = final
	}
	s.mu.Unlock()

	if prev != nil && next != nil {
		prev.Pause()
	}
}

// params checks that every parameter the operation needs is present and
// converts the request to engine parameters.
func (s *Session) params(current model.Structure, req Request) (algorithms.Params, error) {
	if err := validation.Struct(&req); err != nil {
		return algorithms.Params{}, err
	}
	spec, ok := algorithms.Lookup(current.Kind(), req.Operation)
	if !ok {
		return algorithms.Params{}, model.InvalidInputError(req.Operation, current.Kind(),
			"unknown operation %q for %s", req.Operation, current.Kind())
	}

	present := map[string]bool{
		algorithms.ParamValue:    req.Value != nil,
		algorithms.ParamKey:      req.Key != nil,
		algorithms.ParamPosition: req.Position != nil,
		algorithms.ParamItem:     req.Item != "",
		algorithms.ParamVertex:   req.Vertex != "",
		algorithms.ParamFrom:     req.From != "",
		algorithms.ParamTo:       req.To != "",
	}
	for _, need := range spec.Needs {
		if !present[need] {
			return algorithms.Params{}, model.InvalidInputError(req.Operation, current.Kind(),
				"%s: field is required for %s", need, req.Operation)
		}
	}

	p := algorithms.Params{
		Item:   req.Item,
		Vertex: req.Vertex,
		From:   req.From,
		To:     req.To,
	}
	if req.Value != nil {
		p.Value = *req.Value
	}
	if req.Key != nil {
		p.Key = *req.Key
	}
	if req.Position != nil {
		p.Position = *req.Position
	}

	if req.Operation == "addVertex" {
		if g, ok := current.(*model.Graph); ok {
			pos := nextVertexPosition(g, req.Vertex, s.layout)
			p.X, p.Y = pos.X, pos.Y
		}
	}
	if req.X != nil {
		p.X = *req.X
	}
	if req.Y != nil {
		p.Y = *req.Y
	}
	return p, nil
}

func (s *Session) observe(kind model.Kind, op, outcome string, res *Result) {
	if s.metrics == nil {
		return
	}
	frames := 0
	if res.Trace != nil {
		frames = res.Trace.Len()
	}
	s.metrics.RecordOperation(string(kind), op, outcome, frames, res.Elapsed)
}

// Load replaces the live structure, discarding the latest trace.
func (s *Session) Load(req CreateRequest) error {
	if !s.op.TryLock() {
		return ErrBusy
	}
	defer s.op.Unlock()

	structure, err := Build(req, s.layout)
	if err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.player
	s.structure = structure
	s.player = nil
	s.last = nil
	s.mu.Unlock()

	if prev != nil {
		prev.Pause()
	}
	s.logger.Info("structure loaded", logging.Structure(string(structure.Kind())), logging.Count(structure.Len()))
	return nil
}

// View lays out what is on display: the player's current frame, or the
// live structure when nothing has been played.
func (s *Session) View() (*visualization.Visualization, error) {
	s.mu.RLock()
	p, live, layout := s.player, s.structure, s.layout
	s.mu.RUnlock()

	shown := live
	if p != nil && p.Cursor() > 0 {
		if f, ok := p.Current(); ok {
			shown = f.Structure()
		}
	}
	if shown == nil {
		return nil, fmt.Errorf("session %s has no structure", s.id)
	}
	return visualization.Build(shown, layout)
}

// Close stops playback and releases the session.
func (s *Session) Close() {
	s.mu.RLock()
	p := s.player
	s.mu.RUnlock()
	if p != nil {
		p.Pause()
	}
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
	s.logger.Info("session closed")
}

// frameRenderer returns the renderer for a player of tr: the configured
// renderer, plus publication to the event broker when one is set.
func (s *Session) frameRenderer(tr *trace.Trace) player.Renderer {
	if s.events == nil {
		return s.renderer
	}
	next := s.renderer
	return player.RendererFunc(func(index int, f trace.Frame) {
		if next != nil {
			next.Render(index, f)
		}
		s.events.Publish(s.id, events.FrameEvent{
			SessionID: s.id,
			Operation: tr.Operation(),
			Index:     index,
			Frames:    tr.Len(),
			Frame:     f,
		})
	})
}

func lastMessage(tr *trace.Trace) string {
	if f, ok := tr.Last(); ok {
		if msg, ok := f.Message(); ok {
			return msg
		}
	}
	return ""
}
