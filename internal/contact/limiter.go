package contact

import (
	"strings"
	"sync"
	"time"
)

// sharedClient buckets submissions whose client IP could not be resolved.
const sharedClient = "unknown"

// Limiter admits at most max submissions per client within any trailing
// window. The caller supplies the instant so the service clock drives it.
type Limiter struct {
	max    int
	window time.Duration

	mu        sync.Mutex
	seen      map[string][]time.Time
	nextSweep time.Time
}

// NewLimiter returns nil when max or window is not positive. A nil Limiter
// admits every submission.
func NewLimiter(max int, window time.Duration) *Limiter {
	if max <= 0 || window <= 0 {
		return nil
	}
	return &Limiter{
		max:    max,
		window: window,
		seen:   make(map[string][]time.Time),
	}
}

// Admit records an attempt by client at now unless the client already used
// its budget within (now-window, now].
func (l *Limiter) Admit(client string, now time.Time) bool {
	if l == nil {
		return true
	}
	client = strings.TrimSpace(client)
	if client == "" {
		client = sharedClient
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Before(l.nextSweep) {
		l.sweep(now)
	}

	attempts := l.recent(client, now)
	if len(attempts) >= l.max {
		l.seen[client] = attempts
		return false
	}
	l.seen[client] = append(attempts, now)
	return true
}

// recent returns the attempts by client still inside the window ending at now.
func (l *Limiter) recent(client string, now time.Time) []time.Time {
	attempts := l.seen[client]
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	return attempts[i:]
}

func (l *Limiter) sweep(now time.Time) {
	for client := range l.seen {
		if len(l.recent(client, now)) == 0 {
			delete(l.seen, client)
		}
	}
	l.nextSweep = now.Add(l.window)
}
