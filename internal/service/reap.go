package service

import (
	"context"
	"fmt"
	"slices"

	"votebox/backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReapResult summarises one sweep.
type ReapResult struct {
	StaleUsersRemoved int `json:"stale_users_removed"`
	RoomsRemoved      int `json:"rooms_removed"`
}

// ReapStale deletes users idle for longer than the stale threshold, then
// deletes rooms that are left without members. Membership is re-counted
// under the room lock, so a room repopulated since the user scan survives.
func (s *Service) ReapStale(ctx context.Context) (ReapResult, error) {
	var result ReapResult
	cutoff := s.now().Add(-s.staleAfter)

	err := s.transact(ctx, func(tx *gorm.DB, events *roomEvents) error {
		result = ReapResult{}

		var stale []models.User
		if err := tx.Where("last_updated < ?", cutoff).Find(&stale).Error; err != nil {
			return fmt.Errorf("find stale users: %w", err)
		}

		var userIDs, roomIDs []uint
		for _, u := range stale {
			userIDs = append(userIDs, u.ID)
			if u.RoomID != nil && !slices.Contains(roomIDs, *u.RoomID) {
				roomIDs = append(roomIDs, *u.RoomID)
			}
		}
		if len(userIDs) > 0 {
			if err := tx.Where("id IN ?", userIDs).Delete(&models.User{}).Error; err != nil {
				return fmt.Errorf("delete stale users: %w", err)
			}
		}
		result.StaleUsersRemoved = len(userIDs)

		// Rooms nobody references that have not been touched since the
		// cutoff, whichever path left them empty.
		var orphanIDs []uint
		err := tx.Model(&models.Room{}).
			Where("last_updated < ?", cutoff).
			Where("NOT EXISTS (?)", tx.Model(&models.User{}).Select("1").Where("users.room_id = rooms.id")).
			Pluck("id", &orphanIDs).Error
		if err != nil {
			return fmt.Errorf("find orphaned rooms: %w", err)
		}
		for _, id := range orphanIDs {
			if !slices.Contains(roomIDs, id) {
				roomIDs = append(roomIDs, id)
			}
		}

		slices.Sort(roomIDs)
		for _, roomID := range roomIDs {
			deleted, err := deleteIfEmpty(tx, roomID)
			if err != nil {
				return err
			}
			if deleted {
				result.RoomsRemoved++
				events.remove(roomID)
			} else {
				events.update(roomID)
			}
		}
		return nil
	})
	if err != nil {
		return ReapResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"stale_users_removed": result.StaleUsersRemoved,
		"rooms_removed":       result.RoomsRemoved,
		"cutoff":              cutoff,
	}).Info("Stale user sweep finished")
	return result, nil
}
