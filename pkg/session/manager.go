package session

import (
	"cmp"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
)

// ErrTooManySessions is returned by Create when the manager is full.
var ErrTooManySessions = errors.New("session: too many sessions")

// ManagerConfig bounds the sessions a Manager keeps.
type ManagerConfig struct {
	MaxSessions     int           // 0 means unlimited
	IdleTimeout     time.Duration // sessions unused for longer are closed
	CleanupInterval time.Duration
}

type entry struct {
	session  *Session
	lastSeen time.Time
	seq      uint64
}

// Manager keeps the live sessions of the HTTP shell, one per visualizer.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	nextSeq  uint64
	config   ManagerConfig
	opts     []Option
	stopChan chan struct{}
	stopOnce sync.Once

	logger  logging.Logger
	metrics *metrics.Registry
}

// NewManager creates a manager and starts its idle-session sweeper when
// IdleTimeout is set. Options are applied to every session it creates.
func NewManager(cfg ManagerConfig, logger logging.Logger, reg *metrics.Registry, opts ...Option) *Manager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	m := &Manager{
		sessions: make(map[string]*entry),
		config:   cfg,
		stopChan: make(chan struct{}),
		logger:   logger.With(logging.Component("sessions")),
		metrics:  reg,
	}
	m.opts = append([]Option{WithLogger(logger), WithMetrics(reg)}, opts...)

	if cfg.IdleTimeout > 0 {
		if m.config.CleanupInterval <= 0 {
			m.config.CleanupInterval = cfg.IdleTimeout / 2
		}
		go m.cleanupLoop()
	}
	return m
}

// Create builds a new session.
func (m *Manager) Create(req CreateRequest) (*Session, error) {
	m.mu.RLock()
	full := m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions
	m.mu.RUnlock()
	if full {
		return nil, ErrTooManySessions
	}

	s, err := New(req, m.opts...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		s.Close()
		return nil, ErrTooManySessions
	}
	m.nextSeq++
	m.sessions[s.ID()] = &entry{session: s, lastSeen: time.Now(), seq: m.nextSeq}
	return s, nil
}

// Get returns the session with the given id and marks it used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = time.Now()
	return e.session, nil
}

// Delete closes and forgets a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.session.Close()
	return nil
}

// List returns the live session ids, oldest first.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return cmp.Compare(m.sessions[a].seq, m.sessions[b].seq)
	})
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the sweeper and closes every session.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stopChan) })

	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range sessions {
		e.session.Close()
	}
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep(time.Now())
		case <-m.stopChan:
			return
		}
	}
}

// sweep closes sessions idle since before now - IdleTimeout.
func (m *Manager) sweep(now time.Time) int {
	var expired []*Session

	m.mu.Lock()
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.config.IdleTimeout {
			expired = append(expired, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		m.logger.Info("idle sessions closed", logging.Count(len(expired)))
	}
	return len(expired)
}
