package core

import (
	"context"
	"testing"
	"time"

	"github.com/avelichko/gameroom-server/internal/store"
)

// stubUsers is an in-memory UserFinder with a fixed user set.
type stubUsers struct {
	users map[int64]*store.User
}

func newStubUsers(names ...string) *stubUsers {
	s := &stubUsers{users: make(map[int64]*store.User)}
	for i, name := range names {
		id := int64(i + 1)
		s.users[id] = &store.User{ID: id, Name: name}
	}
	return s
}

func (s *stubUsers) GetUserByID(_ context.Context, id int64) (*store.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
