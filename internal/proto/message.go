// Package proto defines the JSON envelopes exchanged over the room
// websocket, independent of core types.
package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin         = "join"
	InboundTypeLeave        = "leave"
	InboundTypeRooms        = "rooms"
	InboundTypeConnectionID = "connection_id"

	OutboundTypeWelcome = "welcome"
	OutboundTypeResult  = "result"
	OutboundTypeEvent   = "event"
	OutboundTypeError   = "error"

	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
)

// JoinData requests to join a room as a registered user.
type JoinData struct {
	Room   string `json:"room"`
	UserID int64  `json:"user_id"`
}

// LeaveData requests to leave a room.
type LeaveData struct {
	Room string `json:"room"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Op    string `json:"op,omitempty"`    // set on results, echoes the inbound type
	Event string `json:"event,omitempty"` // set on push events
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Welcome is pushed once after the connection is accepted.
type Welcome struct {
	SessionID string `json:"session_id"`
	Protocol  int    `json:"protocol"`
}

// User is a persisted user identity as seen on the wire.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// JoinedUser is one room member in rosters and join events.
type JoinedUser struct {
	SessionID string `json:"session_id"`
	User      User   `json:"user"`
	JoinOrder int    `json:"join_order"`
}

// JoinResult is the response to a join request: the room's full current
// membership, the joiner included.
type JoinResult struct {
	Room  string       `json:"room"`
	Users []JoinedUser `json:"users"`
}

// RoomsResult is the response to a rooms request.
type RoomsResult struct {
	Rooms []string `json:"rooms"`
}

// ConnectionIDResult is the response to a connection_id request.
type ConnectionIDResult struct {
	SessionID string `json:"session_id"`
}

// EventUserJoinedData notifies members that a user joined their room.
type EventUserJoinedData struct {
	Room string     `json:"room"`
	User JoinedUser `json:"user"`
}

// EventUserLeftData notifies members that a session left their room.
type EventUserLeftData struct {
	Room      string `json:"room"`
	SessionID string `json:"session_id"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
