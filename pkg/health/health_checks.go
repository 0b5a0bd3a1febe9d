package health

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/dd0wney/cluso-algoviz/pkg/algorithms"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// SelfTest runs one engine on a fixed input and returns an error when the
// trace or its final structure is wrong.
type SelfTest func() error

// EngineSelfTests returns one known-answer test per engine family. Each goes
// through the operation catalogue, so dispatch is covered as well.
func EngineSelfTests() map[string]SelfTest {
	return map[string]SelfTest{
		"sort": func() error {
			tr, err := algorithms.Run(model.NewArray(3, 1, 2), algorithms.SortInsertion, algorithms.Params{})
			if err != nil {
				return err
			}
			if got := tr.Final().(*model.Array).Values(); !slices.Equal(got, []int{1, 2, 3}) {
				return fmt.Errorf("insertion sort produced %v", got)
			}
			return nil
		},
		"heap": func() error {
			tr, err := algorithms.Run(model.NewBuiltHeap(model.MaxHeap, 4, 1, 3), "insert", algorithms.Params{Value: 9})
			if err != nil {
				return err
			}
			h := tr.Final().(*model.Heap)
			if h.Values()[0] != 9 {
				return fmt.Errorf("heap insert left root %d, want 9", h.Values()[0])
			}
			return h.CheckOrder()
		},
		"bst": func() error {
			tr, err := algorithms.Run(model.NewBST(8, 4, 12), "delete", algorithms.Params{Value: 8})
			if err != nil {
				return err
			}
			t := tr.Final().(*model.Tree)
			if got := t.InOrderValues(); !slices.Equal(got, []int{4, 12}) {
				return fmt.Errorf("bst delete left %v", got)
			}
			return t.CheckOrder()
		},
		"graph": func() error {
			tr, err := algorithms.Run(model.SampleGraph(false), "bfs", algorithms.Params{Vertex: "A"})
			if err != nil {
				return err
			}
			if got := tr.Result(); !slices.Equal(got, []string{"A", "B", "D", "C", "E", "F"}) {
				return fmt.Errorf("bfs visited %v", got)
			}
			return nil
		},
	}
}

// EngineCheck runs tests in name order and fails if any of them fails.
func EngineCheck(tests map[string]SelfTest) CheckFunc {
	names := make([]string, 0, len(tests))
	for name := range tests {
		names = append(names, name)
	}
	slices.Sort(names)

	return func(ctx context.Context) Check {
		check := Check{Details: make(map[string]any, len(names))}
		var failed []string
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				check.Details[name] = "skipped"
				failed = append(failed, name)
				continue
			}
			if err := tests[name](); err != nil {
				check.Details[name] = err.Error()
				failed = append(failed, name)
				continue
			}
			check.Details[name] = "ok"
		}

		if len(failed) > 0 {
			check.Status = StatusUnhealthy
			check.Message = fmt.Sprintf("%d of %d engine self tests failed: %s", len(failed), len(names), strings.Join(failed, ", "))
			return check
		}
		check.Status = StatusHealthy
		check.Message = fmt.Sprintf("%d engine families producing traces", len(names))
		return check
	}
}

// SessionsCheck reports session capacity. At the limit existing sessions
// keep working but new ones are refused, which degrades the report and
// fails readiness. A max of 0 means unbounded.
func SessionsCheck(getState func() (active, max int)) CheckFunc {
	return func(context.Context) Check {
		active, limit := getState()
		check := Check{Details: map[string]any{"active": active, "max": limit}}

		switch {
		case limit <= 0:
			check.Status = StatusHealthy
			check.Message = fmt.Sprintf("%d sessions, no limit", active)
		case active >= limit:
			check.Status = StatusDegraded
			check.Message = "Session limit reached, new sessions are refused"
			check.Details["headroom"] = 0
		default:
			check.Status = StatusHealthy
			check.Message = fmt.Sprintf("%d of %d sessions in use", active, limit)
			check.Details["headroom"] = limit - active
		}
		return check
	}
}

// AssistantFailureThreshold is how many consecutive remote failures
// degrade the assistant check.
const AssistantFailureThreshold = 3

// AssistantCheck reports the remote answer tier. Local answers keep
// working without it, so failures only degrade.
func AssistantCheck(getState func() (remoteEnabled bool, failures int)) CheckFunc {
	return func(context.Context) Check {
		enabled, failures := getState()
		check := Check{Details: map[string]any{"remote_enabled": enabled, "consecutive_failures": failures}}

		switch {
		case !enabled:
			check.Status = StatusHealthy
			check.Message = "Local answers only"
		case failures >= AssistantFailureThreshold:
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("Remote model failed %d times in a row, answering locally", failures)
		default:
			check.Status = StatusHealthy
			check.Message = "Remote model available"
		}
		return check
	}
}

// ProcessCheck reports the process as live with its goroutine count.
func ProcessCheck() CheckFunc {
	return func(context.Context) Check {
		return Check{
			Status:  StatusHealthy,
			Message: "Serving",
			Details: map[string]any{"goroutines": runtime.NumGoroutine()},
		}
	}
}
