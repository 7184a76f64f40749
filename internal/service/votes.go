package service

import (
	"context"
	"errors"
	"fmt"

	"votebox/backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Majority returns the yes votes needed in a room of the given size and
// whether votes reaches it. The threshold is half the room rounded up, so an
// even split counts as a majority.
func Majority(members, votes int) (required int, has bool) {
	required = (members + 1) / 2
	return required, members > 0 && votes >= required
}

// Vote sets the caller's vote. It is a plain set, not a toggle, and is
// allowed outside a room.
func (s *Service) Vote(ctx context.Context, sessionID string, votedYes bool) error {
	return s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		user, err := resolve(tx, sessionID)
		if err != nil {
			return err
		}

		err = tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
			"voted_yes":    votedYes,
			"last_updated": s.now(),
		}).Error
		if err != nil {
			return fmt.Errorf("update vote: %w", err)
		}

		if user.RoomID != nil {
			events.update(*user.RoomID)
		}
		logrus.WithField("user_id", user.ID).Debug("Vote recorded")
		return nil
	})
}

// roomInfo builds the privacy-filtered view of a room. A missing room is
// reported as corruption because callers only reach it through a reference.
func roomInfo(tx *gorm.DB, user *models.User) (*RoomView, error) {
	var room models.Room
	err := tx.First(&room, *user.RoomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d, room %d", ErrCorruptRoomRef, user.ID, *user.RoomID)
	}
	if err != nil {
		return nil, fmt.Errorf("load room %d: %w", *user.RoomID, err)
	}

	users, err := members(tx, room.ID)
	if err != nil {
		return nil, err
	}
	return newRoomView(&room, users), nil
}
