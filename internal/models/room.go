package models

import "time"

// Room is a voting room. Its members are the users whose RoomID points at it.
type Room struct {
	ID          uint      `gorm:"primaryKey"`
	Code        string    `gorm:"size:6;uniqueIndex;not null"`
	LastUpdated time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}
