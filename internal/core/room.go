package core

import (
	"sync"

	"github.com/google/uuid"
)

// Room binds a room name to one Group and one membership map; it owns
// both. The group and the users map are always mutated together under
// mu, so the users key set stays a subset of the group's membership.
type Room struct {
	ID   string
	Name string

	mu    sync.Mutex
	group *Group
	users map[string]*RoomUser

	// closed is set, under mu, by the leave that saw the member count
	// reach zero. A join that finds the room closed must re-fetch it
	// from the registry.
	closed bool
}

func newRoom(name string) *Room {
	return &Room{
		ID:    uuid.NewString(),
		Name:  name,
		group: newGroup(),
		users: make(map[string]*RoomUser),
	}
}

// roster returns the current members ordered by join order. Caller must
// hold mu.
func (r *Room) roster() []JoinedUser {
	out := make([]JoinedUser, 0, len(r.users))
	for _, ru := range r.users {
		out = append(out, ru.JoinedUser)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].JoinOrder < out[j-1].JoinOrder; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Count returns the room's member count.
func (r *Room) Count() int {
	return r.group.Count()
}

// Dispose releases the group's delivery handles. Called exactly once,
// by the registry removal path.
func (r *Room) Dispose() {
	r.group.Close()
}
