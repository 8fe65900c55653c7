package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a single token bucket.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int64
	tokens     int64
	refillRate int64 // tokens per second
	lastRefill time.Time
}

// NewTokenBucket creates a full bucket.
func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow consumes one token if available.
func (tb *TokenBucket) Allow() bool {
	return tb.AllowN(1)
}

// AllowN consumes n tokens if available.
func (tb *TokenBucket) AllowN(n int64) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens < n {
		return false
	}
	tb.tokens -= n
	return true
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	added := int64(elapsed.Seconds()) * tb.refillRate
	if added <= 0 {
		return
	}

	tb.tokens += added
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}

// Limiter keeps one bucket per key (IP address, meal name, ...).
type Limiter struct {
	mu         sync.RWMutex
	buckets    map[string]*TokenBucket
	capacity   int64
	refillRate int64

	cleanupEvery time.Duration
}

// NewLimiter creates a keyed limiter and starts background cleanup of
// idle buckets.
func NewLimiter(capacity, refillRate int64) *Limiter {
	l := &Limiter{
		buckets:      make(map[string]*TokenBucket),
		capacity:     capacity,
		refillRate:   refillRate,
		cleanupEvery: 10 * time.Minute,
	}

	go l.cleanupLoop()

	return l
}

// Allow reports whether a request for key is within the limit.
func (l *Limiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

func (l *Limiter) bucket(key string) *TokenBucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check under the write lock.
	if b, ok = l.buckets[key]; ok {
		return b
	}

	b = NewTokenBucket(l.capacity, l.refillRate)
	l.buckets[key] = b
	return b
}

// Reset drops the bucket for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanupEvery)
	defer ticker.Stop()

	for range ticker.C {
		l.cleanup()
	}
}

// cleanup removes buckets that are full again, i.e. keys idle for at
// least one cleanup interval.
func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.tokens == b.capacity && now.Sub(b.lastRefill) > l.cleanupEvery
		b.mu.Unlock()

		if idle {
			delete(l.buckets, key)
		}
	}
}
