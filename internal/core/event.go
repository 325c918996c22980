package core

// EventKind is a notification the core emits to room members.
type EventKind int

const (
	// EventUserJoined notifies members that a user joined their room.
	EventUserJoined EventKind = iota
	// EventUserLeft notifies members that a session left their room.
	EventUserLeft
)

// Event is pushed to room members to describe a membership change.
type Event struct {
	Kind      EventKind
	Room      string
	SessionID string      // set for EventUserLeft
	Joined    *JoinedUser // set for EventUserJoined
}

// User is the persisted identity a session joins rooms as.
type User struct {
	ID   int64
	Name string
}

// JoinedUser records one session's presence in a room. Immutable once
// created; JoinOrder is the room occupancy at the moment of joining.
type JoinedUser struct {
	SessionID string
	User      User
	JoinOrder int
}

// RoomUser wraps a JoinedUser with room-local transient state, kept
// separate from the persisted identity.
type RoomUser struct {
	JoinedUser JoinedUser
}
