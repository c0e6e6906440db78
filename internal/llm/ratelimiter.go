package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider throttles an underlying provider with a token
// bucket. The bucket starts full, so bursts up to rpm go through before
// pacing kicks in.
type RateLimitedProvider struct {
	provider Provider
	rpm      int

	mu       sync.Mutex
	tokens   int
	lastFill time.Time
}

// NewRateLimitedProvider caps the provider at rpm requests per minute.
// A non-positive rpm returns the provider unwrapped.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	if rpm <= 0 {
		return provider
	}
	return &RateLimitedProvider{
		provider: provider,
		rpm:      rpm,
		tokens:   rpm,
		lastFill: time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	return r.provider.Complete(ctx, req)
}

// acquire blocks until a token is available or ctx ends. Refills happen
// one token per interval, anchored to lastFill so pacing does not drift.
func (r *RateLimitedProvider) acquire(ctx context.Context) error {
	interval := time.Minute / time.Duration(r.rpm)

	for {
		r.mu.Lock()
		now := time.Now()
		if n := int(now.Sub(r.lastFill) / interval); n > 0 {
			r.tokens = min(r.tokens+n, r.rpm)
			r.lastFill = r.lastFill.Add(time.Duration(n) * interval)
		}
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		wait := interval - now.Sub(r.lastFill)
		r.mu.Unlock()

		if wait < time.Millisecond {
			wait = time.Millisecond
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
