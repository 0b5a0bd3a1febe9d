package health

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a single check.
const DefaultTimeout = 2 * time.Second

// NewChecker creates a checker whose checks each get timeout to finish.
// A non-positive timeout means DefaultTimeout.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{timeout: timeout, started: time.Now()}
}

// Register adds fn under name to every scope in scopes. Registering a name
// again replaces the earlier check in place.
func (c *Checker) Register(name string, fn CheckFunc, scopes Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reg := registration{name: name, scopes: scopes, fn: fn}
	if i := slices.IndexFunc(c.checks, func(r registration) bool { return r.name == name }); i >= 0 {
		c.checks[i] = reg
		return
	}
	c.checks = append(c.checks, reg)
}

// Run executes the checks of scope concurrently. A scope with no checks is
// healthy.
func (c *Checker) Run(ctx context.Context, scope Scope) Report {
	c.mu.RLock()
	var regs []registration
	for _, r := range c.checks {
		if r.scopes&scope != 0 {
			regs = append(regs, r)
		}
	}
	c.mu.RUnlock()

	report := Report{
		Scope:     scope,
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Uptime:    time.Since(c.started),
		Checks:    make([]Check, len(regs)),
	}

	var wg sync.WaitGroup
	for i, r := range regs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Checks[i] = c.run(ctx, r)
		}()
	}
	wg.Wait()

	for _, chk := range report.Checks {
		report.Status = worse(report.Status, chk.Status)
	}
	return report
}

func (c *Checker) run(ctx context.Context, r registration) Check {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan Check, 1)
	go func() { done <- r.fn(ctx) }()

	var chk Check
	select {
	case chk = <-done:
	case <-ctx.Done():
		chk = Check{Status: StatusUnhealthy, Message: "check did not finish: " + ctx.Err().Error()}
	}
	chk.Name = r.name
	chk.LastChecked = start
	chk.Duration = time.Since(start)
	return chk
}

var severity = map[Status]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}

func worse(a, b Status) Status {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

// String names the scopes in s, joined by "+".
func (s Scope) String() string {
	var names []string
	for _, n := range []struct {
		s    Scope
		name string
	}{{ScopeHealth, "health"}, {ScopeReady, "ready"}, {ScopeLive, "live"}} {
		if s&n.s != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// MarshalText encodes the scope by name.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
