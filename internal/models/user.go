package models

import "time"

// User is a participant identified by a browser session.
type User struct {
	ID            uint   `gorm:"primaryKey"`
	SessionDigest string `gorm:"size:64;uniqueIndex;not null"`
	Name          string `gorm:"size:255;not null"`
	VotedYes      bool   `gorm:"not null;default:false"`

	// A user can only be in one room at a time. JoinedAt orders the members
	// of a room; the earliest joiner is the host.
	RoomID   *uint `gorm:"index"`
	JoinedAt *time.Time

	LastUpdated time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}

// InRoom reports whether the user currently belongs to a room.
func (u *User) InRoom() bool {
	return u.RoomID != nil
}
