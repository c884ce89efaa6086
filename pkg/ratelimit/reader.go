package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// minBurst keeps the bucket large enough for smooth reads
const minBurst = 64 * 1024

// Limiter is a token bucket shared by any number of readers.
// A nil *Limiter disables limiting.
type Limiter struct {
	rate  int64 // bytes per second
	burst int64

	mu         sync.Mutex
	available  int64
	lastRefill time.Time
}

// NewLimiter creates a limiter for the given rate in bytes per second.
// Rates of zero or below disable limiting by returning nil.
func NewLimiter(rate int64) *Limiter {
	if rate <= 0 {
		return nil
	}

	burst := rate
	if burst < minBurst {
		burst = minBurst
	}

	return &Limiter{
		rate:       rate,
		burst:      burst,
		available:  burst,
		lastRefill: time.Now(),
	}
}

// acquire blocks until n bytes of budget are available, then consumes
// them. It returns early when the context is cancelled.
func (l *Limiter) acquire(ctx context.Context, n int64) error {
	for {
		l.mu.Lock()
		l.refill()
		if l.available >= n {
			l.available -= n
			l.mu.Unlock()
			return nil
		}
		deficit := n - l.available
		l.mu.Unlock()

		wait := time.Duration(float64(deficit) / float64(l.rate) * float64(time.Second))
		if wait < time.Millisecond {
			wait = time.Millisecond
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// refund returns unused budget after a short read
func (l *Limiter) refund(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.available += n
	if l.available > l.burst {
		l.available = l.burst
	}
}

// refill credits budget for the time elapsed since the last refill.
// Callers must hold the mutex.
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill)

	credit := int64(float64(elapsed) / float64(time.Second) * float64(l.rate))
	if credit > 0 {
		l.available += credit
		if l.available > l.burst {
			l.available = l.burst
		}
		l.lastRefill = now
	}
}

// Reader throttles reads from an underlying reader against a shared
// limiter
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps reader with rate limiting. A nil limiter returns the
// reader unchanged.
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{
		reader:  reader,
		limiter: limiter,
		ctx:     ctx,
	}
}

// Read acquires budget for the requested chunk before reading, and
// refunds whatever a short read leaves unused
func (r *Reader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	chunk := int64(len(p))
	if chunk > r.limiter.burst {
		chunk = r.limiter.burst
	}

	if err := r.limiter.acquire(r.ctx, chunk); err != nil {
		return 0, err
	}

	n, err := r.reader.Read(p[:chunk])
	if int64(n) < chunk {
		r.limiter.refund(chunk - int64(n))
	}
	return n, err
}
