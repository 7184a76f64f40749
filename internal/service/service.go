// Package service holds the room and user operations. Every mutation runs in
// a single database transaction; the store is the only concurrency control.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"votebox/backend/internal/hub"
	"votebox/backend/internal/models"
	"votebox/backend/internal/names"
	"votebox/backend/internal/roomcode"
	"votebox/backend/internal/session"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultStaleAfter is how long a user may go without activity before the
// reaper removes them.
const DefaultStaleAfter = 12 * time.Hour

const (
	EventRoomUpdated = "room.updated"
	EventRoomDeleted = "room.deleted"
)

// Notifier receives a room event after the transaction that caused it commits.
type Notifier interface {
	Broadcast(roomID uint, event hub.Event)
}

// Service implements the user directory, room registry, voting and reaping.
type Service struct {
	db         *gorm.DB
	notifier   Notifier
	now        func() time.Time
	newCode    func() string
	newName    func() string
	staleAfter time.Duration
}

// Option customises a Service.
type Option func(*Service)

func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithCodeGenerator(gen func() string) Option { return func(s *Service) { s.newCode = gen } }

func WithNameGenerator(gen func() string) Option { return func(s *Service) { s.newName = gen } }

func WithStaleAfter(d time.Duration) Option { return func(s *Service) { s.staleAfter = d } }

// New creates a Service backed by db.
func New(db *gorm.DB, opts ...Option) *Service {
	if db == nil {
		panic("service: nil database")
	}
	s := &Service{
		db:         db,
		now:        time.Now,
		newCode:    roomcode.Generate,
		newName:    names.Generate,
		staleAfter: DefaultStaleAfter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// roomEvents collects the rooms touched by a transaction so they can be
// announced once it has committed.
type roomEvents struct {
	updated []uint
	deleted []uint
}

func (e *roomEvents) update(roomID uint) { e.updated = append(e.updated, roomID) }
func (e *roomEvents) remove(roomID uint) { e.deleted = append(e.deleted, roomID) }

func (s *Service) publish(events *roomEvents) {
	if s.notifier == nil {
		return
	}
	deleted := make(map[uint]bool, len(events.deleted))
	for _, id := range events.deleted {
		deleted[id] = true
		s.notifier.Broadcast(id, hub.Event{Type: EventRoomDeleted, Payload: roomPayload(id)})
	}
	seen := make(map[uint]bool, len(events.updated))
	for _, id := range events.updated {
		if deleted[id] || seen[id] {
			continue
		}
		seen[id] = true
		s.notifier.Broadcast(id, hub.Event{Type: EventRoomUpdated, Payload: roomPayload(id)})
	}
}

func roomPayload(roomID uint) map[string]uint {
	return map[string]uint{"room_id": roomID}
}

// transact runs fn in a transaction and publishes the collected room events
// when it commits.
func (s *Service) transact(ctx context.Context, fn func(tx *gorm.DB, events *roomEvents) error) error {
	events := &roomEvents{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, events)
	})
	if err != nil {
		return err
	}
	s.publish(events)
	return nil
}

func resolve(tx *gorm.DB, sessionID string) (*models.User, error) {
	user, err := session.Resolve(tx, sessionID)
	if errors.Is(err, session.ErrNoUser) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return user, nil
}

// lockRoom loads a room and holds a row lock on it until the transaction
// ends. Joins take the same lock, so a membership count read under it cannot
// be invalidated by a concurrent join. Returns nil when the room is gone.
func lockRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock room %d: %w", roomID, err)
	}
	return &room, nil
}

// members returns the users in a room, host first.
func members(tx *gorm.DB, roomID uint) ([]models.User, error) {
	var users []models.User
	err := tx.Where("room_id = ?", roomID).
		Order("joined_at ASC").
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list members of room %d: %w", roomID, err)
	}
	return users, nil
}

// deleteIfEmpty removes the room when nobody references it any more,
// counting members under the room lock.
func deleteIfEmpty(tx *gorm.DB, roomID uint) (bool, error) {
	room, err := lockRoom(tx, roomID)
	if err != nil || room == nil {
		return false, err
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count members of room %d: %w", roomID, err)
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.Delete(&models.Room{}, roomID).Error; err != nil {
		return false, fmt.Errorf("delete room %d: %w", roomID, err)
	}
	return true, nil
}

// uniqueCode draws codes until one is not used by any existing room. There is
// no attempt limit; the unique index on rooms.code is the backstop.
func (s *Service) uniqueCode(tx *gorm.DB) (string, error) {
	for {
		code := s.newCode()
		var count int64
		if err := tx.Model(&models.Room{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check room code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
}
