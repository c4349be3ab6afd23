package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 3, Window: time.Minute, KeyFn: KeyByIP})

	for i := 1; i <= 3; i++ {
		if !rl.Allow("ip:1.2.3.4") {
			t.Errorf("request %d denied, want allowed", i)
		}
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Error("request 4 allowed, want denied")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute, KeyFn: KeyByIP})

	if !rl.Allow("ip:1.1.1.1") {
		t.Error("first request for key A denied")
	}
	if rl.Allow("ip:1.1.1.1") {
		t.Error("second request for key A allowed")
	}
	if !rl.Allow("ip:2.2.2.2") {
		t.Error("first request for key B denied (keys should be independent)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: 20 * time.Millisecond, KeyFn: KeyByIP})

	if !rl.Allow("ip:1.2.3.4") {
		t.Error("first request denied")
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Error("second request within window allowed")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("ip:1.2.3.4") {
		t.Error("request after window expiry denied, want allowed")
	}
}
