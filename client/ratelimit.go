package client

import (
	"io"
	"sync"
	"time"
)

// RateLimiter is a token bucket over bytes per second. It smooths the
// bandwidth that bulk exports pull from the portal so a full worker pool does
// not saturate the connection.
type RateLimiter struct {
	mu     sync.Mutex
	rate   int64   // bytes per second
	tokens float64 // current available tokens
	last   time.Time
}

// NewRateLimiter returns a limiter for the given throughput. A rate of zero
// or below means unlimited and yields a nil limiter, which every method
// accepts.
func NewRateLimiter(bytesPerSecond int64) *RateLimiter {
	if bytesPerSecond <= 0 {
		return nil
	}
	return &RateLimiter{
		rate:   bytesPerSecond,
		tokens: float64(bytesPerSecond),
		last:   time.Now(),
	}
}

// Wrap throttles reads from r against the limiter. A nil limiter returns r
// unchanged.
func (l *RateLimiter) Wrap(r io.Reader) io.Reader {
	if l == nil {
		return r
	}
	return &limitedReader{under: r, lim: l}
}

type limitedReader struct {
	under io.Reader
	lim   *RateLimiter
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	lr.lim.mu.Lock()

	// Refill the bucket for the time passed since the last read
	now := time.Now()
	elapsed := now.Sub(lr.lim.last).Seconds()
	if elapsed > 0 {
		lr.lim.tokens += elapsed * float64(lr.lim.rate)
		if capacity := float64(lr.lim.rate); lr.lim.tokens > capacity {
			lr.lim.tokens = capacity
		}
		lr.lim.last = now
	}

	allowed := int(lr.lim.tokens)
	if allowed <= 0 {
		// The bucket is empty, wait for the next refill cycle
		lr.lim.mu.Unlock()
		time.Sleep(time.Duration(float64(time.Second) / float64(lr.lim.rate)))
		return lr.Read(p)
	}
	if len(p) > allowed {
		p = p[:allowed]
	}
	lr.lim.mu.Unlock()

	n, err := lr.under.Read(p)
	if n > 0 {
		lr.lim.mu.Lock()
		lr.lim.tokens -= float64(n)
		lr.lim.mu.Unlock()
	}
	return n, err
}
