package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type Limiter interface {
	Allow(ip string) (bool, time.Duration)
}

// FixedWindowRateLimiter counts requests per client IP inside a fixed window.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	frame   time.Duration
}

type window struct {
	start time.Time
	count int
}

func NewFixedWindowLimiter(limit int, frame time.Duration) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		frame:   frame,
	}
	go rl.sweep()
	return rl
}

// Allow reports whether ip may proceed, and if not, how long until its
// window resets.
func (rl *FixedWindowRateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[ip]
	if !ok || now.Sub(w.start) >= rl.frame {
		rl.windows[ip] = &window{start: now, count: 1}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	return false, rl.frame - now.Sub(w.start)
}

// sweep drops windows that have fully expired so the map does not grow with
// one entry per client forever.
func (rl *FixedWindowRateLimiter) sweep() {
	ticker := time.NewTicker(rl.frame)
	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-rl.frame)
		for ip, w := range rl.windows {
			if w.start.Before(cutoff) {
				delete(rl.windows, ip)
			}
		}
		rl.mu.Unlock()
	}
}
