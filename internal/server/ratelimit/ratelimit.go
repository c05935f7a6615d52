// Package ratelimit limits requests per client and endpoint with token
// buckets from golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// bucketIdleTTL is how long an unused bucket survives cleanup.
const bucketIdleTTL = time.Hour

// bucket is one client+endpoint token bucket.
type bucket struct {
	limiter    *rate.Limiter
	capacity   int
	mu         sync.Mutex
	lastAccess time.Time
}

func newBucket(capacity int, refillPerSecond float64) *bucket {
	return &bucket{
		limiter:    rate.NewLimiter(rate.Limit(refillPerSecond), capacity),
		capacity:   capacity,
		lastAccess: time.Now(),
	}
}

func (b *bucket) allow() bool {
	b.touch()
	return b.limiter.Allow()
}

// status reports whole tokens left and when the bucket will be full again.
func (b *bucket) status() (remaining int, resetTime time.Time) {
	now := time.Now()
	tokens := b.limiter.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	remaining = int(tokens)

	missing := float64(b.capacity) - tokens
	if missing <= 0 || b.limiter.Limit() <= 0 {
		return remaining, now
	}
	secondsUntilFull := missing / float64(b.limiter.Limit())
	return remaining, now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
}

func (b *bucket) touch() {
	b.mu.Lock()
	b.lastAccess = time.Now()
	b.mu.Unlock()
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAccess.Before(cutoff)
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter manages token buckets for many clients.
type Limiter struct {
	config      *Config
	mu          sync.Mutex
	buckets     map[string]*bucket
	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter. A nil config enables a default
// limit of 1000 requests per minute.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}

	return l
}

// Allow reports whether a request from clientID to method+endpoint may
// proceed, along with the bucket state.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.getBucket(clientID+":"+endpoint+":"+method, ec)
	allowed := b.allow()
	remaining, resetTime := b.status()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetTime), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      ec.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) getBucket(key string, ec *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	window := ec.Window
	if window <= 0 {
		window = time.Minute
	}
	b := newBucket(capacity, float64(ec.Limit)/window.Seconds())
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-bucketIdleTTL))
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops buckets not used since cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
			evicted++
		}
	}
	return evicted
}

// Size returns the number of live buckets.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
