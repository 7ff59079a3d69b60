package mapview

import (
	"sync"
	"time"
)

// Presence tracks whether anyone is looking at the map. The page polls the
// markers endpoint only while its tab is visible, so a recent poll means a
// visible viewer.
type Presence struct {
	mu     sync.Mutex
	last   time.Time
	window time.Duration
	now    func() time.Time
}

func NewPresence(window time.Duration) *Presence {
	return &Presence{window: window, now: time.Now}
}

// Touch records a poll from a visible page.
func (p *Presence) Touch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = p.now()
}

// Visible reports whether a page polled within the window.
func (p *Presence) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last.IsZero() {
		return false
	}
	return p.now().Sub(p.last) <= p.window
}
