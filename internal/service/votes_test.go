package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMajority(t *testing.T) {
	tests := []struct {
		members, votes int
		required       int
		has            bool
	}{
		{members: 0, votes: 0, required: 0, has: false},
		{members: 0, votes: 3, required: 0, has: false},
		{members: 1, votes: 0, required: 1, has: false},
		{members: 1, votes: 1, required: 1, has: true},
		{members: 2, votes: 1, required: 1, has: true},
		{members: 4, votes: 1, required: 2, has: false},
		{members: 4, votes: 2, required: 2, has: true},
		{members: 5, votes: 2, required: 3, has: false},
		{members: 5, votes: 3, required: 3, has: true},
		{members: 6, votes: 3, required: 3, has: true},
	}
	for _, tt := range tests {
		required, has := Majority(tt.members, tt.votes)
		assert.Equal(t, tt.required, required, "M=%d V=%d", tt.members, tt.votes)
		assert.Equal(t, tt.has, has, "M=%d V=%d", tt.members, tt.votes)
	}
}

func TestVote_AggregatesYesVotes(t *testing.T) {
	f := newFixture(t)
	f.room(t, "a", "b", "c", "d")

	require.NoError(t, f.svc.Vote(f.ctx, "a", true))
	room := f.state(t, "a").Room
	assert.Equal(t, 1, room.Votes)
	assert.Equal(t, 2, room.VotesRequired)
	assert.False(t, room.HasMajority)

	require.NoError(t, f.svc.Vote(f.ctx, "c", true))
	room = f.state(t, "b").Room
	assert.Equal(t, 2, room.Votes)
	assert.True(t, room.HasMajority)

	// Setting the same value twice is idempotent.
	require.NoError(t, f.svc.Vote(f.ctx, "c", true))
	require.NoError(t, f.svc.Vote(f.ctx, "a", false))
	room = f.state(t, "d").Room
	assert.Equal(t, 1, room.Votes)
	assert.False(t, room.HasMajority)
}

func TestVote_OutsideRoom(t *testing.T) {
	f := newFixture(t)
	f.user(t, "solo")

	require.NoError(t, f.svc.Vote(f.ctx, "solo", true))
	assert.True(t, f.state(t, "solo").User.VotedYes)
	assert.ErrorIs(t, f.svc.Vote(f.ctx, "nobody", true), ErrUserNotFound)
}

func TestGetUserAndRoom_HidesOtherMembersVotes(t *testing.T) {
	f := newFixture(t)
	f.room(t, "a", "b")
	require.NoError(t, f.svc.Vote(f.ctx, "b", true))

	got := f.state(t, "a")
	assert.False(t, got.User.VotedYes)
	assert.Equal(t, 1, got.Room.Votes)

	raw, err := json.Marshal(got.Room)
	require.NoError(t, err)
	var room map[string]any
	require.NoError(t, json.Unmarshal(raw, &room))

	users, ok := room["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 2)
	for _, u := range users {
		member := u.(map[string]any)
		assert.NotContains(t, member, "voted_yes")
		assert.ElementsMatch(t, []string{"id", "name", "joined_at", "is_host"}, keys(member))
	}
	assert.NotContains(t, room, "voted_yes")
	assert.EqualValues(t, 1, room["votes"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
