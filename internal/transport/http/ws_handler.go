package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/avelichko/gameroom-server/internal/core"
	"github.com/avelichko/gameroom-server/internal/proto"
)

// WSHandler upgrades HTTP connections and binds each one to a
// core.Session for its lifetime.
type WSHandler struct {
	registry *core.Registry
	users    core.UserFinder
	cmdLimit int
	log      *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(registry *core.Registry, users core.UserFinder, cmdLimit int, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{
		registry: registry,
		users:    users,
		cmdLimit: cmdLimit,
		log:      logger,
	}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	session := core.NewSession(h.registry, h.users)
	// Disconnect, graceful or not, runs the same room cleanup as an
	// explicit leave.
	defer session.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Connect() -> SessionId: the client learns its session identifier
	// before anything else happens.
	if err := wsjson.Write(ctx, conn, proto.Outbound{
		Type: proto.OutboundTypeWelcome,
		Data: proto.Welcome{SessionID: session.ID(), Protocol: proto.ProtocolVersion},
	}); err != nil {
		h.log.Warn().Err(err).Msg("write welcome")
		return
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, session)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, session)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readLoop turns inbound frames into session calls and writes each
// call's response. Writes are safe concurrently with the write loop.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	rl := newRateLimiter(h.cmdLimit)
	rl.startReset(ctx.Done())

	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			h.log.Debug().Err(err).Str("session_id", session.ID()).Msg("read ws inbound")
			return err
		}

		if !rl.allow() {
			if err := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: &proto.Error{Code: "rate_limited", Msg: "too many requests"},
			}); err != nil {
				return err
			}
			continue
		}

		outbound, err := handleInbound(ctx, session, inbound)
		if err != nil {
			h.log.Warn().Err(err).Str("session_id", session.ID()).Msg("failed to handle inbound")
			return err
		}
		if err := wsjson.Write(ctx, conn, outbound); err != nil {
			return err
		}
	}
}

// writeLoop forwards membership events from the session to the client.
func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	for {
		select {
		case event := <-session.Events():
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("session_id", session.ID()).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
