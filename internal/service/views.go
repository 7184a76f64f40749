package service

import (
	"time"

	"votebox/backend/internal/models"
)

// UserView is the caller's own record. It is the only place a vote is shown.
type UserView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	RoomID      *uint     `json:"room_id"`
	VotedYes    bool      `json:"voted_yes"`
	LastUpdated time.Time `json:"last_updated"`
}

// MemberView is how other members of a room are shown; it carries no vote.
type MemberView struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
	IsHost   bool      `json:"is_host"`
}

// RoomView is a room with its members and aggregate vote.
type RoomView struct {
	ID            uint         `json:"id"`
	Code          string       `json:"code"`
	LastUpdated   time.Time    `json:"last_updated"`
	HostID        uint         `json:"host_id"`
	Users         []MemberView `json:"users"`
	Votes         int          `json:"votes"`
	VotesRequired int          `json:"votes_required"`
	HasMajority   bool         `json:"has_majority"`
}

// UserAndRoom is the result of GetUserAndRoom. Either field may be nil.
type UserAndRoom struct {
	User *UserView `json:"user"`
	Room *RoomView `json:"room"`
}

func newUserView(u *models.User) *UserView {
	return &UserView{
		ID:          u.ID,
		Name:        u.Name,
		RoomID:      u.RoomID,
		VotedYes:    u.VotedYes,
		LastUpdated: u.LastUpdated,
	}
}

func newRoomView(room *models.Room, users []models.User) *RoomView {
	view := &RoomView{
		ID:          room.ID,
		Code:        room.Code,
		LastUpdated: room.LastUpdated,
		Users:       make([]MemberView, 0, len(users)),
	}
	for i, u := range users {
		if u.VotedYes {
			view.Votes++
		}
		member := MemberView{ID: u.ID, Name: u.Name, IsHost: i == 0}
		if u.JoinedAt != nil {
			member.JoinedAt = *u.JoinedAt
		}
		view.Users = append(view.Users, member)
	}
	if len(users) > 0 {
		view.HostID = users[0].ID
	}
	view.VotesRequired, view.HasMajority = Majority(len(users), view.Votes)
	return view
}
