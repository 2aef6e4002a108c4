package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRPS   = 5
	defaultBurst = 10
	// callers silent this long get their bucket dropped
	limiterIdleTTL = 10 * time.Minute
)

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiterPool keeps one token bucket per caller, keyed by API key or
// client IP. Calendar generation is expensive, so a fresh bucket starts
// at full burst rather than empty.
type limiterPool struct {
	mu      sync.Mutex
	buckets map[string]*limiterEntry
	cfg     SecConfig
}

func (p *limiterPool) Allow(caller string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buckets == nil {
		p.buckets = make(map[string]*limiterEntry)
	}

	now := time.Now()
	e, ok := p.buckets[caller]
	if !ok {
		rps := p.cfg.RPS
		if rps <= 0 {
			rps = defaultRPS
		}
		burst := p.cfg.Burst
		if burst <= 0 {
			burst = defaultBurst
		}
		e = &limiterEntry{lim: rate.NewLimiter(rate.Limit(rps), burst)}
		p.buckets[caller] = e
		p.pruneLocked(now)
	}
	e.lastSeen = now
	return e.lim.Allow()
}

// pruneLocked drops idle buckets so one-off callers do not grow the map
// forever. Called with p.mu held, only when a new caller appears.
func (p *limiterPool) pruneLocked(now time.Time) {
	for k, e := range p.buckets {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(p.buckets, k)
		}
	}
}
