package service

import (
	"context"
	"errors"
	"fmt"

	"votebox/backend/internal/models"
	"votebox/backend/internal/roomcode"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateRoom opens a room with a fresh code and makes the caller its first
// member, and therefore its host.
func (s *Service) CreateRoom(ctx context.Context, sessionID string) (string, error) {
	var code string
	err := s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		user, err := resolve(tx, sessionID)
		if err != nil {
			return err
		}

		code, err = s.uniqueCode(tx)
		if err != nil {
			return err
		}

		room := models.Room{Code: code, LastUpdated: s.now()}
		if err := tx.Create(&room).Error; err != nil {
			return fmt.Errorf("create room: %w", err)
		}

		if err := s.enterRoom(tx, events, user, room.ID); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{"user_id": user.ID, "room_id": room.ID, "code": code}).Info("Room created")
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// JoinRoom moves the caller into the room with exactly this code. Joining
// the room one is already in only refreshes activity.
func (s *Service) JoinRoom(ctx context.Context, sessionID, code string) (string, error) {
	if !roomcode.WellFormed(code) {
		return "", ErrInvalidRoomCode
	}

	err := s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		user, err := resolve(tx, sessionID)
		if err != nil {
			return err
		}

		var room models.Room
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("code = ?", code).First(&room).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return fmt.Errorf("find room by code: %w", err)
		}

		if user.RoomID != nil && *user.RoomID == room.ID {
			return s.touch(tx, user.ID)
		}
		if err := s.enterRoom(tx, events, user, room.ID); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{"user_id": user.ID, "room_id": room.ID, "code": code}).Info("User joined room")
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// LeaveRoom takes the caller out of their room, deleting the room if they
// were the last member. Leaving while not in a room does nothing.
func (s *Service) LeaveRoom(ctx context.Context, sessionID string) error {
	return s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		user, err := resolve(tx, sessionID)
		if err != nil {
			return err
		}
		if !user.InRoom() {
			return s.touch(tx, user.ID)
		}

		roomID := *user.RoomID
		if _, err := lockRoom(tx, roomID); err != nil {
			return err
		}
		if err := s.clearMembership(tx, user.ID); err != nil {
			return err
		}
		if err := s.afterDeparture(tx, events, roomID); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{"user_id": user.ID, "room_id": roomID}).Info("User left room")
		return nil
	})
}

// RegenerateRoomCode gives the caller's room a new unique code. Host only.
func (s *Service) RegenerateRoomCode(ctx context.Context, sessionID string) (string, error) {
	var code string
	err := s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		user, err := resolve(tx, sessionID)
		if err != nil {
			return err
		}
		room, err := s.hostRoom(tx, user)
		if err != nil {
			return err
		}

		code, err = s.uniqueCode(tx)
		if err != nil {
			return err
		}
		err = tx.Model(&models.Room{}).Where("id = ?", room.ID).Updates(map[string]any{
			"code":         code,
			"last_updated": s.now(),
		}).Error
		if err != nil {
			return fmt.Errorf("update room code: %w", err)
		}

		events.update(room.ID)
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "room_id": room.ID, "code": code}).Info("Room code regenerated")
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// DeleteUserFromRoom evicts another member from the caller's room. Host only;
// the host cannot evict themselves and must use LeaveRoom instead.
func (s *Service) DeleteUserFromRoom(ctx context.Context, sessionID string, targetUserID uint) error {
	return s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		user, err := resolve(tx, sessionID)
		if err != nil {
			return err
		}
		if targetUserID == user.ID {
			return ErrCannotTargetSelf
		}

		room, err := s.hostRoom(tx, user)
		if err != nil {
			return err
		}

		var target models.User
		err = tx.Where("id = ? AND room_id = ?", targetUserID, room.ID).First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetNotInRoom
		}
		if err != nil {
			return fmt.Errorf("find target user: %w", err)
		}

		if err := s.clearMembership(tx, target.ID); err != nil {
			return err
		}

		events.update(room.ID)
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "room_id": room.ID, "target_id": target.ID}).Info("Member removed from room")
		return nil
	})
}

// hostRoom locks the user's room and checks that the user is its host,
// i.e. the earliest member to have joined.
func (s *Service) hostRoom(tx *gorm.DB, user *models.User) (*models.Room, error) {
	if !user.InRoom() {
		return nil, ErrNotInRoom
	}

	room, err := lockRoom(tx, *user.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("%w: user %d, room %d", ErrCorruptRoomRef, user.ID, *user.RoomID)
	}

	users, err := members(tx, room.ID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 || users[0].ID != user.ID {
		return nil, ErrNotHost
	}
	return room, nil
}

// enterRoom points the user at roomID as its newest member with a cleared
// vote, then cleans up the room they came from.
func (s *Service) enterRoom(tx *gorm.DB, events *roomEvents, user *models.User, roomID uint) error {
	now := s.now()
	err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"room_id":      roomID,
		"joined_at":    now,
		"voted_yes":    false,
		"last_updated": now,
	}).Error
	if err != nil {
		return fmt.Errorf("move user into room: %w", err)
	}
	events.update(roomID)

	if user.RoomID != nil && *user.RoomID != roomID {
		return s.afterDeparture(tx, events, *user.RoomID)
	}
	return nil
}

func (s *Service) clearMembership(tx *gorm.DB, userID uint) error {
	err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"room_id":      nil,
		"joined_at":    nil,
		"voted_yes":    false,
		"last_updated": s.now(),
	}).Error
	if err != nil {
		return fmt.Errorf("clear room membership: %w", err)
	}
	return nil
}

func (s *Service) touch(tx *gorm.DB, userID uint) error {
	err := tx.Model(&models.User{}).Where("id = ?", userID).Update("last_updated", s.now()).Error
	if err != nil {
		return fmt.Errorf("refresh user activity: %w", err)
	}
	return nil
}
