package core

import "sync"

// Receiver consumes events fanned out to room members. Implementations
// must not block; a slow or dead receiver is its own problem only.
type Receiver interface {
	Deliver(ev *Event)
}

// Group is the multicast delivery set backing one room: a live mapping
// from session id to that session's delivery handle.
type Group struct {
	mu      sync.RWMutex
	members map[string]Receiver
	closed  bool
}

func newGroup() *Group {
	return &Group{members: make(map[string]Receiver)}
}

// Add registers a delivery handle under a session id. A second add for
// the same id replaces the handle.
func (g *Group) Add(sessionID string, rc Receiver) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.members[sessionID] = rc
}

// Remove unregisters a session. No-op if absent.
func (g *Group) Remove(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.members, sessionID)
}

// Count returns the current membership size.
func (g *Group) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.members)
}

// BroadcastAll delivers an event to every registered handle.
func (g *Group) BroadcastAll(ev *Event) {
	g.broadcast(nil, ev)
}

// BroadcastExcept delivers an event to every registered handle whose
// session id is not in the exclude set.
func (g *Group) BroadcastExcept(exclude map[string]struct{}, ev *Event) {
	g.broadcast(exclude, ev)
}

// broadcast snapshots the member list under the read lock and delivers
// after releasing it, so fan-out never holds up concurrent add/remove.
// Delivery is fire-and-forget; one failed recipient does not affect the
// rest.
func (g *Group) broadcast(exclude map[string]struct{}, ev *Event) {
	g.mu.RLock()
	targets := make([]Receiver, 0, len(g.members))
	for id, rc := range g.members {
		if _, skip := exclude[id]; skip {
			continue
		}
		targets = append(targets, rc)
	}
	g.mu.RUnlock()

	for _, rc := range targets {
		rc.Deliver(ev)
	}
}

// Close releases all delivery handles. Idempotent; adds after Close are
// ignored.
func (g *Group) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	g.members = make(map[string]Receiver)
}
