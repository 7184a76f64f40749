package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast_OnlyReachesRoomSubscribers(t *testing.T) {
	h := NewHub()
	inRoom, elsewhere := NewClient(), NewClient()
	h.Subscribe(1, inRoom)
	h.Subscribe(2, elsewhere)

	h.Broadcast(1, Event{Type: "room.updated", Payload: map[string]uint{"room_id": 1}})

	require.Len(t, inRoom, 1)
	var got Event
	require.NoError(t, json.Unmarshal(<-inRoom, &got))
	assert.Equal(t, "room.updated", got.Type)
	assert.Empty(t, elsewhere)
}

func TestBroadcast_DropsWhenClientIsFull(t *testing.T) {
	h := NewHub()
	client := make(Client) // unbuffered and never read
	h.Subscribe(1, client)

	assert.NotPanics(t, func() { h.Broadcast(1, Event{Type: "room.updated"}) })
}

func TestUnsubscribe_ClosesClientAndForgetsRoom(t *testing.T) {
	h := NewHub()
	client := NewClient()
	h.Subscribe(7, client)
	assert.Equal(t, 1, h.Subscribers(7))

	h.Unsubscribe(7, client)

	_, open := <-client
	assert.False(t, open)
	assert.Equal(t, 0, h.Subscribers(7))

	// A second unsubscribe must not close the channel twice.
	assert.NotPanics(t, func() { h.Unsubscribe(7, client) })
}
