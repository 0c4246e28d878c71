package application

import "sync"

// sessionGuard admits one order creation per session at a time
type sessionGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newSessionGuard() *sessionGuard {
	return &sessionGuard{active: make(map[string]struct{})}
}

func (g *sessionGuard) acquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[sessionID]; busy {
		return false
	}
	g.active[sessionID] = struct{}{}
	return true
}

func (g *sessionGuard) release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, sessionID)
}
