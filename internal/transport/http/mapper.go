package http

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/avelichko/gameroom-server/internal/core"
	"github.com/avelichko/gameroom-server/internal/proto"
)

// handleInbound dispatches one inbound frame to the session and maps
// the outcome to a wire envelope. A non-nil error means the connection
// itself is broken (malformed JSON payloads); domain failures travel in
// the returned envelope instead.
func handleInbound(ctx context.Context, session *core.Session, inbound proto.Inbound) (proto.Outbound, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return proto.Outbound{}, err
		}
		if join.Room == "" {
			return errorOutbound(core.ErrCodeBadRequest, "room is required"), nil
		}

		roster, err := session.Join(ctx, join.Room, join.UserID)
		if err != nil {
			return outboundFromError(err), nil
		}
		users := make([]proto.JoinedUser, 0, len(roster))
		for _, ju := range roster {
			users = append(users, joinedUserPayload(ju))
		}
		return proto.Outbound{
			Type: proto.OutboundTypeResult,
			Op:   proto.InboundTypeJoin,
			Data: proto.JoinResult{Room: join.Room, Users: users},
		}, nil

	case proto.InboundTypeLeave:
		var leave proto.LeaveData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return proto.Outbound{}, err
		}

		if err := session.Leave(leave.Room); err != nil {
			return outboundFromError(err), nil
		}
		return proto.Outbound{
			Type: proto.OutboundTypeResult,
			Op:   proto.InboundTypeLeave,
		}, nil

	case proto.InboundTypeRooms:
		return proto.Outbound{
			Type: proto.OutboundTypeResult,
			Op:   proto.InboundTypeRooms,
			Data: proto.RoomsResult{Rooms: session.ListRooms()},
		}, nil

	case proto.InboundTypeConnectionID:
		return proto.Outbound{
			Type: proto.OutboundTypeResult,
			Op:   proto.InboundTypeConnectionID,
			Data: proto.ConnectionIDResult{SessionID: session.ID()},
		}, nil

	default:
		return errorOutbound("invalid_message", "unknown message type"), nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventUserJoined:
		data := proto.EventUserJoinedData{Room: event.Room}
		if event.Joined != nil {
			data.User = joinedUserPayload(*event.Joined)
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserJoined,
			Data:  data,
		}
	case core.EventUserLeft:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserLeft,
			Data: proto.EventUserLeftData{
				Room:      event.Room,
				SessionID: event.SessionID,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func outboundFromError(err error) proto.Outbound {
	var ce *core.CoreError
	if errors.As(err, &ce) {
		return errorOutbound(ce.Code, ce.Message)
	}
	return errorOutbound(core.ErrCodeInternal, "internal error")
}

func errorOutbound(code, msg string) proto.Outbound {
	return proto.Outbound{
		Type:  proto.OutboundTypeError,
		Error: &proto.Error{Code: code, Msg: msg},
	}
}

func joinedUserPayload(ju core.JoinedUser) proto.JoinedUser {
	return proto.JoinedUser{
		SessionID: ju.SessionID,
		User:      proto.User{ID: ju.User.ID, Name: ju.User.Name},
		JoinOrder: ju.JoinOrder,
	}
}
