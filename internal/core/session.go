package core

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/avelichko/gameroom-server/internal/store"
)

// sessionEventBuffer sizes the per-session event channel. Broadcasts to
// a session whose buffer is full are dropped rather than blocking the
// sender.
const sessionEventBuffer = 16

// UserFinder resolves persisted user identities during Join. This is
// the only operation the core consumes from the persistence layer.
type UserFinder interface {
	GetUserByID(ctx context.Context, id int64) (*store.User, error)
}

// Session is the per-connection state machine. It tracks which room the
// connection currently belongs to and mediates join/leave against the
// shared registry. A session belongs to at most one room at a time;
// joining another room implicitly leaves the current one.
//
// The transport creates one Session per connection and must call Close
// when the connection ends, gracefully or not, so the room never keeps
// a dead member.
type Session struct {
	id       string
	registry *Registry
	users    UserFinder

	events chan *Event

	mu   sync.Mutex
	room *Room
}

// NewSession creates a session bound to the shared registry, assigning
// it a fresh connection-scoped identifier.
func NewSession(registry *Registry, users UserFinder) *Session {
	return &Session{
		id:       uuid.NewString(),
		registry: registry,
		users:    users,
		events:   make(chan *Event, sessionEventBuffer),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Events is the stream of membership notifications pushed to this
// session. The channel is never closed; the transport's write loop
// exits on its own context.
func (s *Session) Events() <-chan *Event {
	return s.events
}

// Deliver implements Receiver with a non-blocking send.
func (s *Session) Deliver(ev *Event) {
	select {
	case s.events <- ev:
	default:
		// Drop if slow consumer.
	}
}

// Join adds the session to the named room as the given user and returns
// the room's full membership, including the joiner, ordered by join
// order. Everyone already in the room is notified; the joiner is not
// notified of its own arrival.
//
// The user identity is resolved before any room state is touched, so a
// rejected join leaves no trace in the registry or the group.
func (s *Session) Join(ctx context.Context, roomName string, userID int64) ([]JoinedUser, error) {
	if roomName == "" {
		return nil, coreError(ErrCodeBadRequest, "room is required")
	}

	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, coreError(ErrCodeUserNotFound, "user not found")
		}
		return nil, coreError(ErrCodeInternal, "user lookup failed")
	}

	s.mu.Lock()
	prev := s.room
	s.room = nil
	s.mu.Unlock()
	if prev != nil {
		s.depart(prev)
	}

	joined := JoinedUser{
		SessionID: s.id,
		User:      User{ID: u.ID, Name: u.Name},
	}

	for {
		room := s.registry.GetOrCreate(roomName)

		room.mu.Lock()
		if room.closed {
			// Lost a race with this room's teardown; the registry no
			// longer maps the name to it.
			room.mu.Unlock()
			continue
		}

		joined.JoinOrder = len(room.users)
		room.group.Add(s.id, s)
		room.users[s.id] = &RoomUser{JoinedUser: joined}
		roster := room.roster()

		room.group.BroadcastExcept(map[string]struct{}{s.id: {}}, &Event{
			Kind:   EventUserJoined,
			Room:   roomName,
			Joined: &joined,
		})
		room.mu.Unlock()

		s.mu.Lock()
		s.room = room
		s.mu.Unlock()

		return roster, nil
	}
}

// Leave removes the session from its current room. All members present
// before the removal, the leaver included, are notified. Leaving while
// not in a room is a no-op, as is naming a room the session is not in;
// the tracked room, not the argument, decides what is left.
func (s *Session) Leave(roomName string) error {
	s.mu.Lock()
	room := s.room
	s.room = nil
	s.mu.Unlock()

	if room != nil {
		s.depart(room)
	}
	return nil
}

// Close is the transport's disconnect hook. It runs the same membership
// cleanup as Leave so an abrupt disconnect cannot strand a stale member
// in the room.
func (s *Session) Close() {
	s.mu.Lock()
	room := s.room
	s.room = nil
	s.mu.Unlock()

	if room != nil {
		s.depart(room)
	}
}

// depart removes the session from a room, notifying all members first.
// If the removal empties the room, the room is closed in the same
// critical section and then deleted from the registry, so the emptiness
// decision and the delete cannot interleave with a new join.
func (s *Session) depart(room *Room) {
	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return
	}
	if _, ok := room.users[s.id]; !ok {
		room.mu.Unlock()
		return
	}

	room.group.BroadcastAll(&Event{
		Kind:      EventUserLeft,
		Room:      room.Name,
		SessionID: s.id,
	})

	room.group.Remove(s.id)
	delete(room.users, s.id)

	empty := room.group.Count() == 0
	if empty {
		room.closed = true
	}
	room.mu.Unlock()

	if empty {
		s.registry.remove(room.Name, room)
	}
}

// ListRooms returns a snapshot of current room names.
func (s *Session) ListRooms() []string {
	return s.registry.Names()
}

// Room reports the name of the room the session is currently in, if
// any.
func (s *Session) Room() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room == nil {
		return "", false
	}
	return s.room.Name, true
}
