package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/avelichko/gameroom-server/internal/proto"
)

type outboundFrame struct {
	Type  string          `json:"type"`
	Op    string          `json:"op"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) outboundFrame {
	t.Helper()

	var frame outboundFrame
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

func readWelcome(t *testing.T, ctx context.Context, conn *websocket.Conn) string {
	t.Helper()

	frame := readFrame(t, ctx, conn)
	if frame.Type != proto.OutboundTypeWelcome {
		t.Fatalf("expected welcome, got %+v", frame)
	}
	var welcome proto.Welcome
	if err := json.Unmarshal(frame.Data, &welcome); err != nil {
		t.Fatalf("unmarshal welcome: %v", err)
	}
	if welcome.SessionID == "" {
		t.Fatal("welcome carries no session id")
	}
	return welcome.SessionID
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	var payload json.RawMessage
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("marshal inbound: %v", err)
		}
		payload = raw
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		t.Fatalf("write inbound: %v", err)
	}
}

func TestWebSocketJoinLeaveFlow(t *testing.T) {
	server, st, registry := newTestServer(t)
	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := st.CreateUser(ctx, "alice", ""); err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	if _, err := st.CreateUser(ctx, "bob", ""); err != nil {
		t.Fatalf("seed bob: %v", err)
	}

	connA := dialWS(t, ctx, ts)
	sessionA := readWelcome(t, ctx, connA)

	// Alice joins an empty registry; the roster is just her.
	sendInbound(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{Room: "alpha", UserID: 1})
	frame := readFrame(t, ctx, connA)
	if frame.Type != proto.OutboundTypeResult || frame.Op != proto.InboundTypeJoin {
		t.Fatalf("expected join result, got %+v", frame)
	}
	var joinResult proto.JoinResult
	if err := json.Unmarshal(frame.Data, &joinResult); err != nil {
		t.Fatalf("unmarshal join result: %v", err)
	}
	if len(joinResult.Users) != 1 || joinResult.Users[0].User.Name != "alice" {
		t.Fatalf("unexpected roster: %+v", joinResult.Users)
	}
	if joinResult.Users[0].SessionID != sessionA {
		t.Fatal("roster session id does not match welcome")
	}

	// Bob joins the same room; his roster has both, alice is notified.
	connB := dialWS(t, ctx, ts)
	sessionB := readWelcome(t, ctx, connB)

	sendInbound(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{Room: "alpha", UserID: 2})
	frame = readFrame(t, ctx, connB)
	if err := json.Unmarshal(frame.Data, &joinResult); err != nil {
		t.Fatalf("unmarshal join result: %v", err)
	}
	if len(joinResult.Users) != 2 {
		t.Fatalf("expected roster of 2, got %+v", joinResult.Users)
	}

	frame = readFrame(t, ctx, connA)
	if frame.Type != proto.OutboundTypeEvent || frame.Event != proto.EventUserJoined {
		t.Fatalf("expected user_joined event, got %+v", frame)
	}
	var joinedEv proto.EventUserJoinedData
	if err := json.Unmarshal(frame.Data, &joinedEv); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if joinedEv.Room != "alpha" || joinedEv.User.User.Name != "bob" || joinedEv.User.SessionID != sessionB {
		t.Fatalf("unexpected join event: %+v", joinedEv)
	}

	// Room listing reflects the live registry.
	sendInbound(t, ctx, connA, proto.InboundTypeRooms, nil)
	frame = readFrame(t, ctx, connA)
	var rooms proto.RoomsResult
	if err := json.Unmarshal(frame.Data, &rooms); err != nil {
		t.Fatalf("unmarshal rooms: %v", err)
	}
	if len(rooms.Rooms) != 1 || rooms.Rooms[0] != "alpha" {
		t.Fatalf("unexpected rooms: %v", rooms.Rooms)
	}

	// Bob leaves; alice is notified and the room survives with her.
	sendInbound(t, ctx, connB, proto.InboundTypeLeave, proto.LeaveData{Room: "alpha"})
	frame = readFrame(t, ctx, connA)
	if frame.Event != proto.EventUserLeft {
		t.Fatalf("expected user_left event, got %+v", frame)
	}
	var leftEv proto.EventUserLeftData
	if err := json.Unmarshal(frame.Data, &leftEv); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if leftEv.SessionID != sessionB {
		t.Fatalf("unexpected leave event: %+v", leftEv)
	}

	if room, ok := registry.Get("alpha"); !ok || room.Count() != 1 {
		t.Fatal("room should survive with one member")
	}
}

func TestWebSocketDisconnectCleansRoom(t *testing.T) {
	server, st, registry := newTestServer(t)
	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := st.CreateUser(ctx, "alice", ""); err != nil {
		t.Fatalf("seed alice: %v", err)
	}

	conn := dialWS(t, ctx, ts)
	readWelcome(t, ctx, conn)

	sendInbound(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{Room: "beta", UserID: 1})
	readFrame(t, ctx, conn)

	if _, ok := registry.Get("beta"); !ok {
		t.Fatal("room should exist after join")
	}

	// Abrupt close; the server must tear the room down.
	conn.Close(websocket.StatusGoingAway, "bye")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := registry.Get("beta"); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("room was not removed after disconnect")
}

func TestWebSocketJoinUnknownUser(t *testing.T) {
	server, _, registry := newTestServer(t)
	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	readWelcome(t, ctx, conn)

	sendInbound(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{Room: "alpha", UserID: 99})
	frame := readFrame(t, ctx, conn)
	if frame.Type != proto.OutboundTypeError || frame.Error == nil || frame.Error.Code != "user_not_found" {
		t.Fatalf("expected user_not_found error, got %+v", frame)
	}

	// The rejected join must not have created the room.
	if _, ok := registry.Get("alpha"); ok {
		t.Fatal("rejected join created a room")
	}
}

func TestWebSocketConnectionID(t *testing.T) {
	server, _, _ := newTestServer(t)
	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	sessionID := readWelcome(t, ctx, conn)

	sendInbound(t, ctx, conn, proto.InboundTypeConnectionID, nil)
	frame := readFrame(t, ctx, conn)
	if frame.Op != proto.InboundTypeConnectionID {
		t.Fatalf("expected connection_id result, got %+v", frame)
	}
	var result proto.ConnectionIDResult
	if err := json.Unmarshal(frame.Data, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.SessionID != sessionID {
		t.Fatalf("connection id %q does not match welcome %q", result.SessionID, sessionID)
	}
}
