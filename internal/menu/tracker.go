package menu

import (
	"context"
	"sync"
	"time"
)

// Tracker remembers live menu sessions and fires each session's expiry
// callback once SessionTimeout passes without activity. The callback
// re-renders the message with its controls stripped; the message itself is
// never deleted. Sessions for different messages are fully independent.
type Tracker struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[string]*session
}

type session struct {
	deadline time.Time
	expire   func()
}

func NewTracker() *Tracker {
	return &Tracker{
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Track registers a session under key, replacing any previous one. expire
// runs once the session sees no Touch for SessionTimeout.
func (t *Tracker) Track(key string, expire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[key] = &session{
		deadline: t.now().Add(SessionTimeout),
		expire:   expire,
	}
}

// Touch pushes a session's deadline forward. Unknown keys are ignored, the
// session may have expired between the user's click and this call.
func (t *Tracker) Touch(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[key]; ok {
		s.deadline = t.now().Add(SessionTimeout)
	}
}

// Forget drops a session without firing its callback.
func (t *Tracker) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, key)
}

// Run sweeps for expired sessions every interval until ctx is cancelled.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			t.sweep(now)
		}
	}
}

// sweep fires and drops every session whose deadline has passed. Callbacks
// run outside the tracker lock so they may call back into the tracker.
func (t *Tracker) sweep(now time.Time) {
	t.mu.Lock()
	var expired []func()
	for key, s := range t.sessions {
		if now.After(s.deadline) {
			expired = append(expired, s.expire)
			delete(t.sessions, key)
		}
	}
	t.mu.Unlock()

	for _, fn := range expired {
		fn()
	}
}
