package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"votebox/backend/internal/database"
	"votebox/backend/internal/hub"

	"github.com/stretchr/testify/require"
)

// testClock advances one second per reading so join order is always strict.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordedEvent struct {
	roomID uint
	event  hub.Event
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Broadcast(roomID uint, event hub.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{roomID: roomID, event: event})
}

func (n *recordingNotifier) types(roomID uint) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.events {
		if e.roomID == roomID {
			out = append(out, e.event.Type)
		}
	}
	return out
}

type fixture struct {
	svc      *Service
	clock    *testClock
	notifier *recordingNotifier
	ctx      context.Context
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{clock: newTestClock(), notifier: &recordingNotifier{}, ctx: context.Background()}
	opts = append([]Option{WithClock(f.clock.Now), WithNotifier(f.notifier)}, opts...)
	f.svc = New(db, opts...)
	return f
}

func (f *fixture) user(t *testing.T, sessionID string) *UserView {
	t.Helper()
	u, err := f.svc.CreateUser(f.ctx, sessionID)
	require.NoError(t, err)
	return u
}

func (f *fixture) state(t *testing.T, sessionID string) *UserAndRoom {
	t.Helper()
	got, err := f.svc.GetUserAndRoom(f.ctx, sessionID)
	require.NoError(t, err)
	return got
}

// room creates a room hosted by the first session and joined by the rest.
func (f *fixture) room(t *testing.T, sessions ...string) string {
	t.Helper()
	for _, s := range sessions {
		f.user(t, s)
	}
	code, err := f.svc.CreateRoom(f.ctx, sessions[0])
	require.NoError(t, err)
	for _, s := range sessions[1:] {
		_, err := f.svc.JoinRoom(f.ctx, s, code)
		require.NoError(t, err)
	}
	return code
}
