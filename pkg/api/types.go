package api

import (
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/assistant"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
	"github.com/dd0wney/cluso-algoviz/pkg/player"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
	"github.com/dd0wney/cluso-algoviz/pkg/trace"
)

// API Request/Response Types

// OperationInfo describes one operation of a structure family.
type OperationInfo struct {
	Name    string        `json:"name"`
	Needs   []string      `json:"needs"`
	Mutates bool          `json:"mutates"`
	Listing trace.Listing `json:"listing"`
}

// KindsResponse lists the structure families.
type KindsResponse struct {
	Kinds []model.Kind `json:"kinds"`
}

// OperationsResponse lists the operations of one family.
type OperationsResponse struct {
	Kind       model.Kind      `json:"kind"`
	Operations []OperationInfo `json:"operations"`
}

// SessionResponse is the full state of a session.
type SessionResponse struct {
	ID          string            `json:"id"`
	Kind        model.Kind        `json:"kind"`
	Created     time.Time         `json:"created"`
	Speed       int               `json:"speed"`
	Structure   model.Structure   `json:"structure"`
	Operations  []string          `json:"operations"`
	Unavailable map[string]string `json:"unavailable,omitempty"` // operation -> reason it cannot complete
	Player      *PlayerResponse   `json:"player,omitempty"`
	Last        *ApplyResponse    `json:"last,omitempty"`
}

// SessionListResponse lists live session ids in creation order.
type SessionListResponse struct {
	Sessions []string `json:"sessions"`
	Count    int      `json:"count"`
}

// ApplyResponse reports one operation. Declined operations still carry the
// trace explaining why.
type ApplyResponse struct {
	Operation string          `json:"operation"`
	Outcome   session.Outcome `json:"outcome"`
	Notice    string          `json:"notice,omitempty"`
	ElapsedMs float64         `json:"elapsed_ms"`
	Trace     *trace.Trace    `json:"trace,omitempty"`
}

// PlayerResponse is the playback state of the latest trace.
type PlayerResponse struct {
	State   player.State `json:"state"`
	Cursor  int          `json:"cursor"`
	Frames  int          `json:"frames"`
	Speed   int          `json:"speed"`
	DelayMs int64        `json:"delay_ms"`
	Frame   *trace.Frame `json:"frame,omitempty"`
}

// SpeedRequest moves the speed slider.
type SpeedRequest struct {
	Speed int `json:"speed" validate:"min=1,max=100"`
}

// TraceRequest runs one operation over a throwaway structure.
type TraceRequest struct {
	Structure session.CreateRequest `json:"structure"`
	Operation session.Request       `json:"operation"`
}

// ChatRequest carries the conversation so far; the last user message is
// answered.
type ChatRequest struct {
	Messages []assistant.Message `json:"messages" validate:"required,min=1,max=50,dive"`
}

// ChatResponse is the assistant's answer.
type ChatResponse struct {
	Reply  string           `json:"reply"`
	Source assistant.Source `json:"source"`
	Topic  string           `json:"topic,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Uptime    string         `json:"uptime"`
	Sessions  int            `json:"sessions"`
	Checks    map[string]any `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func toApplyResponse(res *session.Result) *ApplyResponse {
	if res == nil {
		return nil
	}
	return &ApplyResponse{
		Operation: res.Operation,
		Outcome:   res.Outcome,
		Notice:    res.Notice,
		ElapsedMs: float64(res.Elapsed.Microseconds()) / 1000,
		Trace:     res.Trace,
	}
}
