package analytics

import (
	"sync"
	"time"
)

// viewLimiter admits a key at most once per window. It keeps one page refresh
// loop from counting as many views.
type viewLimiter struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	window time.Duration
	now    func() time.Time
}

func newViewLimiter(window time.Duration) *viewLimiter {
	return &viewLimiter{
		seen:   make(map[string]time.Time),
		window: window,
		now:    time.Now,
	}
}

// allow reports whether key was not admitted within the window, and if so
// records it.
func (l *viewLimiter) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.seen[key]; ok && now.Sub(last) < l.window {
		return false
	}
	l.seen[key] = now
	return true
}

// prune drops keys whose window has passed.
func (l *viewLimiter) prune() {
	cutoff := l.now().Add(-l.window)
	l.mu.Lock()
	for key, t := range l.seen {
		if !t.After(cutoff) {
			delete(l.seen, key)
		}
	}
	l.mu.Unlock()
}

// run prunes once per window until done is closed.
func (l *viewLimiter) run(done <-chan struct{}) {
	if l.window <= 0 {
		return
	}
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.prune()
		case <-done:
			return
		}
	}
}
