package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/logging"
)

// RateLimitConfig configures rate limiting
type RateLimitConfig struct {
	RequestsPerSecond float64       // Rate of token replenishment
	BurstSize         int           // Bucket capacity
	CleanupInterval   time.Duration // How often idle buckets are dropped
	ClientExpiration  time.Duration // Idle time after which a bucket is dropped
	MaxClients        int           // Cap on tracked clients, 0 for no cap
	Logger            logging.Logger
}

// DefaultRateLimitConfig suits an interactive front end: a play loop at
// top speed issues roughly ten step requests a second.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerSecond: 20,
		BurstSize:         40,
		CleanupInterval:   5 * time.Minute,
		ClientExpiration:  10 * time.Minute,
		MaxClients:        10000,
	}
}

// tokenBucket implements the token bucket rate limiting algorithm
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// RateLimiter keeps one token bucket per client.
type RateLimiter struct {
	config   RateLimitConfig
	clients  map[string]*tokenBucket
	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewRateLimiter creates a limiter and starts its cleanup goroutine; call
// Stop to end it.
func NewRateLimiter(config *RateLimitConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	cfg := *config
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		config:   cfg,
		clients:  make(map[string]*tokenBucket),
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
	go rl.cleanupLoop()
	return rl
}

// Allow takes a token from clientID's bucket. It returns false when the
// bucket is empty or when a new client would exceed MaxClients.
func (rl *RateLimiter) Allow(clientID string) bool {
	bucket := rl.getBucket(clientID)
	if bucket == nil {
		return false
	}

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens = min(bucket.tokens+elapsed*rl.config.RequestsPerSecond, float64(rl.config.BurstSize))
	bucket.lastRefill = now

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) getBucket(clientID string) *tokenBucket {
	rl.mu.RLock()
	bucket, exists := rl.clients[clientID]
	rl.mu.RUnlock()
	if exists {
		return bucket
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if bucket, exists = rl.clients[clientID]; exists {
		return bucket
	}
	if rl.config.MaxClients > 0 && len(rl.clients) >= rl.config.MaxClients {
		rl.config.Logger.Warn("rate limiter full, rejecting new client",
			logging.String("client", clientID),
			logging.Count(rl.config.MaxClients),
		)
		return nil
	}

	bucket = &tokenBucket{
		tokens:     float64(rl.config.BurstSize),
		lastRefill: rl.now(),
	}
	rl.clients[clientID] = bucket
	return bucket
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopChan:
			return
		}
	}
}

// cleanup drops buckets idle longer than ClientExpiration and returns how
// many were removed.
func (rl *RateLimiter) cleanup() int {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for clientID, bucket := range rl.clients {
		bucket.mu.Lock()
		expired := now.Sub(bucket.lastRefill) > rl.config.ClientExpiration
		bucket.mu.Unlock()
		if expired {
			delete(rl.clients, clientID)
			removed++
		}
	}
	if removed > 0 {
		rl.config.Logger.Debug("rate limiter cleanup", logging.Count(removed))
	}
	return removed
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.clients)
}

// ClientIDFunc is a function that extracts a client identifier from a request
type ClientIDFunc func(*http.Request) string

// RateLimit answers 429 with Retry-After once a client's bucket is empty.
// A nil limiter disables limiting. onLimited, when set, runs before the
// 429 is written.
func RateLimit(limiter *RateLimiter, getClientID ClientIDFunc, onLimited func(r *http.Request, clientID string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			clientID := getClientID(r)
			if !limiter.Allow(clientID) {
				if onLimited != nil {
					onLimited(r, clientID)
				}
				w.Header().Set("Retry-After", "1")
				w.Header().Set("X-RateLimit-Limit", strconv.FormatFloat(limiter.config.RequestsPerSecond, 'f', 0, 64))
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please retry after 1 second.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
