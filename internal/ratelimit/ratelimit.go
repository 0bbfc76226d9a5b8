// Package ratelimit spaces outgoing requests so the scraper stays polite
// towards the target host.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

type Limiter interface {
	Wait(ctx context.Context) error
}

// Jittered enforces a randomized delay between consecutive actions. A zero
// min and max disables the delay entirely.
type Jittered struct {
	mu         sync.Mutex
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
}

func NewJittered(minDelay, maxDelay time.Duration) *Jittered {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Jittered{minDelay: minDelay, maxDelay: maxDelay}
}

// Wait blocks until the delay since the previous action has elapsed, or the
// context is cancelled.
func (j *Jittered) Wait(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	delay := j.delay()
	if elapsed := time.Since(j.lastAction); elapsed < delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay - elapsed):
		}
	}

	j.lastAction = time.Now()
	return nil
}

func (j *Jittered) delay() time.Duration {
	if j.maxDelay <= j.minDelay {
		return j.minDelay
	}
	jitter := time.Duration(rand.Int63n(int64(j.maxDelay - j.minDelay)))
	return j.minDelay + jitter
}
