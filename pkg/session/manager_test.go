package session

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
)

func TestManager_Lifecycle(t *testing.T) {
	reg := metrics.NewRegistry()
	m := NewManager(ManagerConfig{}, nil, reg)
	defer m.Close()

	a, err := m.Create(CreateRequest{Kind: "array", Values: []int{2, 1}})
	require.NoError(t, err)
	b, err := m.Create(CreateRequest{Kind: "stack"})
	require.NoError(t, err)

	got, err := m.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, []string{a.ID(), b.ID()}, m.List())
	assert.Equal(t, 2.0, testutil.ToFloat64(reg.SessionsActive))

	require.NoError(t, m.Delete(a.ID()))
	_, err = m.Get(a.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(a.ID()), ErrSessionNotFound)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.SessionsActive))
}

func TestManager_CreateInvalid(t *testing.T) {
	m := NewManager(ManagerConfig{}, nil, nil)
	defer m.Close()

	_, err := m.Create(CreateRequest{Kind: "unknown"})
	assert.Error(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestManager_MaxSessions(t *testing.T) {
	m := NewManager(ManagerConfig{MaxSessions: 1}, nil, nil)
	defer m.Close()

	_, err := m.Create(CreateRequest{Kind: "queue"})
	require.NoError(t, err)
	_, err = m.Create(CreateRequest{Kind: "queue"})
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestManager_SweepIdle(t *testing.T) {
	m := NewManager(ManagerConfig{IdleTimeout: time.Hour}, nil, nil)
	defer m.Close()

	stale, err := m.Create(CreateRequest{Kind: "queue"})
	require.NoError(t, err)
	fresh, err := m.Create(CreateRequest{Kind: "queue"})
	require.NoError(t, err)

	m.mu.Lock()
	m.sessions[stale.ID()].lastSeen = time.Now().Add(-2 * time.Hour)
	m.mu.Unlock()

	assert.Equal(t, 1, m.sweep(time.Now()))
	_, err = m.Get(stale.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(fresh.ID())
	assert.NoError(t, err)
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	m := NewManager(ManagerConfig{IdleTimeout: time.Minute}, nil, nil)
	_, err := m.Create(CreateRequest{Kind: "stack"})
	require.NoError(t, err)

	m.Close()
	m.Close()
	assert.Equal(t, 0, m.Len())
}
