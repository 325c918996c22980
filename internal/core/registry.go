package core

import (
	"sort"
	"sync"
)

// Registry is the single source of truth for which rooms currently
// exist. Rooms are created on first join and removed by the leave that
// empties them; unrelated rooms never contend on each other's locks.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry constructs an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room registered under name, creating it if
// absent. Concurrent callers for the same name all observe the same
// instance; exactly one creation wins.
//
// The returned room may have been closed by a racing teardown by the
// time the caller locks it; callers must check closed and retry.
func (r *Registry) GetOrCreate(name string) *Room {
	r.mu.RLock()
	room, ok := r.rooms[name]
	r.mu.RUnlock()
	if ok {
		return room
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[name]; ok {
		return room
	}
	room = newRoom(name)
	r.rooms[name] = room
	return room
}

// Get returns the room registered under name, or false. Never creates.
func (r *Registry) Get(name string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[name]
	return room, ok
}

// Names returns a point-in-time snapshot of current room names, sorted.
// Names may appear or vanish immediately after the snapshot is taken.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.rooms))
	for name := range r.rooms {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// remove deletes and disposes a room, but only if the registry still
// maps name to that exact instance. The caller has already marked the
// room closed in the same critical section that emptied it, so no join
// can land between that decision and this delete.
func (r *Registry) remove(name string, room *Room) {
	r.mu.Lock()
	current, ok := r.rooms[name]
	if ok && current == room {
		delete(r.rooms, name)
	} else {
		ok = false
	}
	r.mu.Unlock()

	if ok {
		room.Dispose()
	}
}
