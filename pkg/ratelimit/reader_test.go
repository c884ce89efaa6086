package ratelimit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

// TestNewLimiter tests the Limiter constructor
func TestNewLimiter(t *testing.T) {
	t.Run("ValidRate", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024) // 1 MB/s
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil for valid input")
		}
		if limiter.rate != 1024*1024 {
			t.Errorf("rate = %d, want %d", limiter.rate, 1024*1024)
		}
	})

	t.Run("ZeroRate", func(t *testing.T) {
		if NewLimiter(0) != nil {
			t.Error("NewLimiter(0) should return nil (no limiting)")
		}
	})

	t.Run("NegativeRate", func(t *testing.T) {
		if NewLimiter(-100) != nil {
			t.Error("NewLimiter(-100) should return nil (no limiting)")
		}
	})

	t.Run("SmallRate", func(t *testing.T) {
		limiter := NewLimiter(1000) // 1 KB/s
		if limiter.burst != minBurst {
			t.Errorf("burst = %d, want %d", limiter.burst, minBurst)
		}
	})

	t.Run("LargeRate", func(t *testing.T) {
		limiter := NewLimiter(100 * 1024 * 1024) // 100 MB/s
		// Burst is one second worth of data
		if limiter.burst != 100*1024*1024 {
			t.Errorf("burst = %d, want %d", limiter.burst, 100*1024*1024)
		}
	})
}

// TestNewReader tests the Reader constructor
func TestNewReader(t *testing.T) {
	t.Run("WithLimiter", func(t *testing.T) {
		baseReader := strings.NewReader("test content")
		reader := NewReader(context.Background(), baseReader, NewLimiter(1024*1024))

		if _, ok := reader.(*Reader); !ok {
			t.Error("NewReader() should return *Reader when limiter is provided")
		}
	})

	t.Run("NilLimiter", func(t *testing.T) {
		baseReader := strings.NewReader("test content")
		reader := NewReader(context.Background(), baseReader, nil)

		// Should return the original reader when limiter is nil
		if reader != io.Reader(baseReader) {
			t.Error("NewReader() should return original reader when limiter is nil")
		}
	})
}

// TestReaderRead tests the Read method
func TestReaderRead(t *testing.T) {
	t.Run("BasicRead", func(t *testing.T) {
		content := []byte("hello world")
		reader := NewReader(context.Background(), bytes.NewReader(content), NewLimiter(1024*1024))

		buf := make([]byte, 100)
		n, err := reader.Read(buf)
		if err != nil && err != io.EOF {
			t.Fatalf("Read() error = %v", err)
		}
		if n != len(content) {
			t.Errorf("Read() n = %d, want %d", n, len(content))
		}
		if !bytes.Equal(buf[:n], content) {
			t.Errorf("Read() content = %s, want %s", string(buf[:n]), string(content))
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		content := make([]byte, 1024)
		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		reader := NewReader(ctx, bytes.NewReader(content), NewLimiter(1024*1024))

		buf := make([]byte, 100)
		_, err := reader.Read(buf)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Read() error = %v, want context.Canceled", err)
		}
	})

	t.Run("MultipleReads", func(t *testing.T) {
		content := []byte("0123456789abcdef")
		reader := NewReader(context.Background(), bytes.NewReader(content), NewLimiter(1024*1024))

		var result []byte
		buf := make([]byte, 4)
		for {
			n, err := reader.Read(buf)
			if n > 0 {
				result = append(result, buf[:n]...)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
		}

		if !bytes.Equal(result, content) {
			t.Errorf("Read() accumulated = %s, want %s", string(result), string(content))
		}
	})
}

// TestReaderThrottles verifies reads slow to the configured rate once
// the initial burst is spent
func TestReaderThrottles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	rate := int64(128 * 1024)
	payload := make([]byte, 256*1024)
	reader := NewReader(context.Background(), bytes.NewReader(payload), NewLimiter(rate))

	start := time.Now()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	elapsed := time.Since(start)

	// 256 KiB at 128 KiB/s with a 128 KiB burst needs about a second
	if elapsed < 600*time.Millisecond {
		t.Errorf("transfer took %v, want at least 600ms", elapsed)
	}
	if elapsed > 10*time.Second {
		t.Errorf("transfer took %v, want well under 10s", elapsed)
	}
}

// TestBlockedReadObservesCancel verifies a read waiting on budget wakes
// up when the context is cancelled
func TestBlockedReadObservesCancel(t *testing.T) {
	payload := make([]byte, 192*1024)
	ctx, cancel := context.WithCancel(context.Background())
	reader := NewReader(ctx, bytes.NewReader(payload), NewLimiter(1))

	// The initial burst covers the first read
	buf := make([]byte, 64*1024)
	if _, err := io.ReadFull(reader, buf); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := reader.Read(buf)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Read() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("blocked Read() did not observe cancellation")
	}
}

// TestShortReadRefund verifies budget reserved beyond what a short read
// produced returns to the bucket
func TestShortReadRefund(t *testing.T) {
	limiter := NewLimiter(1)
	ctx := context.Background()

	// Reserves a full buffer of budget but only 10 bytes arrive
	first := NewReader(ctx, bytes.NewReader(make([]byte, 10)), limiter)
	buf := make([]byte, 64*1024)
	if _, err := first.Read(buf); err != nil && err != io.EOF {
		t.Fatalf("Read() error = %v", err)
	}

	// With the refund applied a small follow-up read is instant
	second := NewReader(ctx, bytes.NewReader(make([]byte, 1024)), limiter)
	small := make([]byte, 1024)
	start := time.Now()
	if _, err := io.ReadFull(second, small); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("follow-up read took %v, want near-instant", elapsed)
	}
}

// TestTokenBucket tests the bucket bookkeeping directly
func TestTokenBucket(t *testing.T) {
	t.Run("StartsFull", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024)
		if limiter.available != limiter.burst {
			t.Errorf("initial available = %d, want %d", limiter.available, limiter.burst)
		}
	})

	t.Run("AcquireConsumes", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024)
		before := limiter.available

		if err := limiter.acquire(context.Background(), 1000); err != nil {
			t.Fatalf("acquire() error = %v", err)
		}
		if limiter.available != before-1000 {
			t.Errorf("after acquire, available = %d, want %d", limiter.available, before-1000)
		}
	})

	t.Run("RefundCapped", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024)
		limiter.refund(5000)

		if limiter.available != limiter.burst {
			t.Errorf("after refund, available = %d, want capped at %d", limiter.available, limiter.burst)
		}
	})

	t.Run("RefillCredits", func(t *testing.T) {
		limiter := NewLimiter(1000)
		limiter.available = 0
		limiter.lastRefill = time.Now().Add(-100 * time.Millisecond)

		limiter.refill()

		// About 100 bytes for 100ms at 1000 bytes per second
		if limiter.available < 50 || limiter.available > 150 {
			t.Errorf("after refill, available = %d, expected around 100", limiter.available)
		}
	})

	t.Run("RefillCapped", func(t *testing.T) {
		limiter := NewLimiter(1000)
		limiter.available = limiter.burst - 10
		limiter.lastRefill = time.Now().Add(-1 * time.Second)

		limiter.refill()

		if limiter.available != limiter.burst {
			t.Errorf("after capped refill, available = %d, want %d", limiter.available, limiter.burst)
		}
	})
}

// BenchmarkRateLimitedRead benchmarks rate-limited reading
func BenchmarkRateLimitedRead(b *testing.B) {
	content := make([]byte, 1024*1024)
	limiter := NewLimiter(100 * 1024 * 1024) // fast enough to not stall
	ctx := context.Background()
	buf := make([]byte, 64*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reader := NewReader(ctx, bytes.NewReader(content), limiter)

		for {
			_, err := reader.Read(buf)
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatalf("Read() error = %v", err)
			}
		}
	}
}

// BenchmarkUnlimitedRead benchmarks reading without rate limiting
func BenchmarkUnlimitedRead(b *testing.B) {
	content := make([]byte, 1024*1024)
	buf := make([]byte, 64*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		baseReader := bytes.NewReader(content)

		for {
			_, err := baseReader.Read(buf)
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatalf("Read() error = %v", err)
			}
		}
	}
}
