package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func fixed(status Status) CheckFunc {
	return func(context.Context) Check { return Check{Status: status} }
}

func TestRun_WorstStatusWins(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"no checks", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy beats degraded", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(0)
			for i, s := range tt.statuses {
				c.Register(string(rune('a'+i)), fixed(s), ScopeHealth)
			}
			if got := c.Run(context.Background(), ScopeHealth).Status; got != tt.want {
				t.Errorf("status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRun_SelectsScope(t *testing.T) {
	c := NewChecker(0)
	c.Register("engines", fixed(StatusHealthy), ScopeHealth|ScopeReady)
	c.Register("assistant", fixed(StatusDegraded), ScopeHealth)
	c.Register("process", fixed(StatusHealthy), ScopeLive)

	names := func(r Report) []string {
		var out []string
		for _, chk := range r.Checks {
			out = append(out, chk.Name)
		}
		return out
	}

	full := c.Run(context.Background(), ScopeHealth)
	if got := strings.Join(names(full), ","); got != "engines,assistant" {
		t.Errorf("health checks = %s", got)
	}
	if full.Status != StatusDegraded {
		t.Errorf("health status = %s, want degraded", full.Status)
	}

	ready := c.Run(context.Background(), ScopeReady)
	if got := strings.Join(names(ready), ","); got != "engines" || ready.Status != StatusHealthy {
		t.Errorf("ready = %s %s, want engines healthy", got, ready.Status)
	}
	if got := strings.Join(names(c.Run(context.Background(), ScopeLive)), ","); got != "process" {
		t.Errorf("live checks = %s", got)
	}
}

func TestRegister_ReplacesByName(t *testing.T) {
	c := NewChecker(0)
	c.Register("sessions", fixed(StatusDegraded), ScopeHealth)
	c.Register("engines", fixed(StatusHealthy), ScopeHealth)
	c.Register("sessions", fixed(StatusHealthy), ScopeHealth)

	r := c.Run(context.Background(), ScopeHealth)
	if len(r.Checks) != 2 || r.Checks[0].Name != "sessions" {
		t.Fatalf("checks = %+v, want sessions replaced in place", r.Checks)
	}
	if r.Status != StatusHealthy {
		t.Errorf("status = %s, want healthy", r.Status)
	}
}

func TestRun_BoundsSlowChecks(t *testing.T) {
	c := NewChecker(20 * time.Millisecond)
	c.Register("honours ctx", func(ctx context.Context) Check {
		<-ctx.Done()
		return Check{Status: StatusHealthy}
	}, ScopeReady)
	c.Register("ignores ctx", func(context.Context) Check {
		time.Sleep(300 * time.Millisecond)
		return Check{Status: StatusHealthy}
	}, ScopeReady)

	start := time.Now()
	r := c.Run(context.Background(), ScopeReady)
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("Run took %v, want about the check timeout", elapsed)
	}
	if r.Status != StatusUnhealthy {
		t.Errorf("status = %s, want unhealthy", r.Status)
	}
	ignored := r.Checks[1]
	if ignored.Status != StatusUnhealthy || !strings.Contains(ignored.Message, "did not finish") {
		t.Errorf("slow check = %+v", ignored)
	}
	if ignored.Name != "ignores ctx" || ignored.LastChecked.IsZero() {
		t.Errorf("runner did not stamp the check: %+v", ignored)
	}
}

func TestEngineSelfTests_Pass(t *testing.T) {
	tests := EngineSelfTests()
	for _, family := range []string{"sort", "heap", "bst", "graph"} {
		if _, ok := tests[family]; !ok {
			t.Errorf("no self test for %s", family)
		}
	}

	chk := EngineCheck(tests)(context.Background())
	if chk.Status != StatusHealthy {
		t.Fatalf("engine check = %s: %s (%v)", chk.Status, chk.Message, chk.Details)
	}
	for name, detail := range chk.Details {
		if detail != "ok" {
			t.Errorf("%s = %v", name, detail)
		}
	}
}

func TestEngineCheck_ReportsFailures(t *testing.T) {
	check := EngineCheck(map[string]SelfTest{
		"sort":   func() error { return nil },
		"broken": func() error { return errors.New("bfs visited [A]") },
	})

	chk := check(context.Background())
	if chk.Status != StatusUnhealthy {
		t.Errorf("status = %s, want unhealthy", chk.Status)
	}
	if chk.Message != "1 of 2 engine self tests failed: broken" {
		t.Errorf("message = %q", chk.Message)
	}
	if chk.Details["broken"] != "bfs visited [A]" || chk.Details["sort"] != "ok" {
		t.Errorf("details = %v", chk.Details)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chk = check(ctx)
	if chk.Status != StatusUnhealthy || chk.Details["sort"] != "skipped" {
		t.Errorf("cancelled run = %s %v, want every test skipped", chk.Status, chk.Details)
	}
}

func TestSessionsCheck(t *testing.T) {
	tests := []struct {
		name          string
		active, limit int
		want          Status
		headroom      any
	}{
		{"unbounded", 500, 0, StatusHealthy, nil},
		{"room left", 3, 10, StatusHealthy, 7},
		{"one slot left", 9, 10, StatusHealthy, 1},
		{"at limit", 10, 10, StatusDegraded, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chk := SessionsCheck(func() (int, int) { return tt.active, tt.limit })(context.Background())
			if chk.Status != tt.want {
				t.Errorf("status = %s, want %s (%s)", chk.Status, tt.want, chk.Message)
			}
			if chk.Details["headroom"] != tt.headroom {
				t.Errorf("headroom = %v, want %v", chk.Details["headroom"], tt.headroom)
			}
		})
	}
}

func TestAssistantCheck(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		failures int
		want     Status
	}{
		{"local only", false, 10, StatusHealthy},
		{"remote fine", true, 0, StatusHealthy},
		{"remote flaky", true, AssistantFailureThreshold - 1, StatusHealthy},
		{"remote failing", true, AssistantFailureThreshold, StatusDegraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chk := AssistantCheck(func() (bool, int) { return tt.enabled, tt.failures })(context.Background())
			if chk.Status != tt.want {
				t.Errorf("status = %s, want %s", chk.Status, tt.want)
			}
		})
	}
}

func TestHandler_StatusCodes(t *testing.T) {
	c := NewChecker(0)
	c.Register("sessions", SessionsCheck(func() (int, int) { return 4, 4 }), ScopeHealth|ScopeReady)
	c.Register("process", ProcessCheck(), ScopeLive)

	tests := []struct {
		scope Scope
		want  int
	}{
		{ScopeHealth, http.StatusOK},
		{ScopeReady, http.StatusServiceUnavailable},
		{ScopeLive, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.scope.String(), func(t *testing.T) {
			rr := httptest.NewRecorder()
			c.Handler(tt.scope)(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rr.Code != tt.want {
				t.Errorf("code = %d, want %d", rr.Code, tt.want)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body struct {
				Scope  string  `json:"scope"`
				Checks []Check `json:"checks"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Scope != tt.scope.String() || len(body.Checks) != 1 {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestScopeString(t *testing.T) {
	if got := (ScopeHealth | ScopeReady).String(); got != "health+ready" {
		t.Errorf("String() = %q", got)
	}
	if got := Scope(0).String(); got != "none" {
		t.Errorf("String() = %q", got)
	}
}
