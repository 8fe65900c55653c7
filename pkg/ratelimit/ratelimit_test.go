package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucket_Allow(t *testing.T) {
	bucket := NewTokenBucket(5, 1) // 5 capacity, 1 refill per second

	// Should allow the first 5 requests
	for i := 0; i < 5; i++ {
		if !bucket.Allow() {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be denied
	if bucket.Allow() {
		t.Error("6th request should be denied")
	}

	// Wait 1 second for refill
	time.Sleep(1100 * time.Millisecond)

	if !bucket.Allow() {
		t.Error("Request after refill should be allowed")
	}
}

func TestTokenBucket_AllowN(t *testing.T) {
	bucket := NewTokenBucket(10, 2)

	if !bucket.AllowN(10) {
		t.Error("AllowN(10) should be allowed on a full bucket")
	}

	if bucket.AllowN(1) {
		t.Error("AllowN(1) should be denied after consuming all tokens")
	}

	// Wait 1 second (refills 2 tokens)
	time.Sleep(1100 * time.Millisecond)

	if !bucket.AllowN(2) {
		t.Error("AllowN(2) should be allowed after refill")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(3, 1)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("ip:10.0.0.1") {
			t.Errorf("Request %d for first key should be allowed", i+1)
		}
	}

	if limiter.Allow("ip:10.0.0.1") {
		t.Error("4th request for first key should be denied")
	}

	// A different key gets its own bucket
	if !limiter.Allow("ip:10.0.0.2") {
		t.Error("First request for second key should be allowed")
	}
}

func TestLimiter_Refill(t *testing.T) {
	limiter := NewLimiter(5, 2)

	for i := 0; i < 5; i++ {
		limiter.Allow("test")
	}

	if limiter.Allow("test") {
		t.Error("Request should be denied after consuming all tokens")
	}

	// Wait 1 second (refills 2 tokens)
	time.Sleep(1100 * time.Millisecond)

	if !limiter.Allow("test") || !limiter.Allow("test") {
		t.Error("Should allow 2 requests after refill")
	}

	if limiter.Allow("test") {
		t.Error("3rd request should be denied")
	}
}

func TestLimiter_Reset(t *testing.T) {
	limiter := NewLimiter(2, 1)

	limiter.Allow("test")
	limiter.Allow("test")

	if limiter.Allow("test") {
		t.Error("Request should be denied")
	}

	limiter.Reset("test")

	if !limiter.Allow("test") {
		t.Error("Request should be allowed after reset")
	}
}
