package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"votebox/backend/internal/models"
	"votebox/backend/internal/session"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	MinNameLength = 2
	MaxNameLength = 64
)

// CreateUser registers the user for a session with a random display name.
// A session may own at most one user.
func (s *Service) CreateUser(ctx context.Context, sessionID string) (*UserView, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	var created *models.User
	err := s.transact(ctx, func(tx *gorm.DB, _ *roomEvents) error {
		digest := session.Digest(sessionID)

		var count int64
		if err := tx.Model(&models.User{}).Where("session_digest = ?", digest).Count(&count).Error; err != nil {
			return fmt.Errorf("check session: %w", err)
		}
		if count > 0 {
			return ErrUserExists
		}

		user := models.User{
			SessionDigest: digest,
			Name:          s.newName(),
			VotedYes:      false,
			LastUpdated:   s.now(),
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		created = &user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID, "name": created.Name}).Info("User created")
	return newUserView(created), nil
}

// ChangeName renames the caller.
func (s *Service) ChangeName(ctx context.Context, sessionID, name string) error {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		return ErrInvalidName
	}

	return s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		user, err := resolve(tx, sessionID)
		if err != nil {
			return err
		}

		err = tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
			"name":         name,
			"last_updated": s.now(),
		}).Error
		if err != nil {
			return fmt.Errorf("rename user: %w", err)
		}
		if user.RoomID != nil {
			events.update(*user.RoomID)
		}
		return nil
	})
}

// DeleteUser removes the caller. A room left without members goes with it;
// otherwise the next member by join time becomes host.
func (s *Service) DeleteUser(ctx context.Context, sessionID string) error {
	return s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		user, err := resolve(tx, sessionID)
		if err != nil {
			return err
		}

		if user.RoomID != nil {
			if _, err := lockRoom(tx, *user.RoomID); err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.User{}, user.ID).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if user.RoomID != nil {
			if err := s.afterDeparture(tx, events, *user.RoomID); err != nil {
				return err
			}
		}

		logrus.WithField("user_id", user.ID).Info("User deleted")
		return nil
	})
}

// GetUserAndRoom returns the caller and, if they are in one, their room.
// An unknown session yields an empty result rather than an error.
func (s *Service) GetUserAndRoom(ctx context.Context, sessionID string) (*UserAndRoom, error) {
	result := &UserAndRoom{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := resolve(tx, sessionID)
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		result.User = newUserView(user)

		if !user.InRoom() {
			return nil
		}
		result.Room, err = roomInfo(tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// afterDeparture deletes roomID if the departure left it empty and records
// the matching event.
func (s *Service) afterDeparture(tx *gorm.DB, events *roomEvents, roomID uint) error {
	deleted, err := deleteIfEmpty(tx, roomID)
	if err != nil {
		return err
	}
	if deleted {
		events.remove(roomID)
		logrus.WithField("room_id", roomID).Info("Empty room deleted")
	} else {
		events.update(roomID)
	}
	return nil
}
