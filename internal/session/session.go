// Package session maps opaque client session tokens to user records.
package session

import (
	"encoding/hex"
	"errors"

	"votebox/backend/internal/models"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

// ErrNoUser is returned by Resolve when no user belongs to the session.
var ErrNoUser = errors.New("session: no user for session")

// Digest returns the value stored in users.session_digest for a token.
// Tokens are never persisted in the clear.
func Digest(sessionID string) string {
	sum := blake2b.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:])
}

// Resolve loads the user acting under sessionID. Pass a transaction handle
// to read the row inside the caller's transaction.
func Resolve(db *gorm.DB, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, ErrNoUser
	}

	var user models.User
	err := db.Where("session_digest = ?", Digest(sessionID)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
