package session

import (
	"testing"
	"time"

	"votebox/backend/internal/database"
	"votebox/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest("abc"), Digest("abc"))
	assert.NotEqual(t, Digest("abc"), Digest("abd"))
	assert.Len(t, Digest("abc"), 64)
	assert.NotContains(t, Digest("session-token"), "session-token")
}

func TestResolve(t *testing.T) {
	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := models.User{SessionDigest: Digest("tok-1"), Name: "calm-red-fox", LastUpdated: time.Now()}
	require.NoError(t, db.Create(&user).Error)

	got, err := Resolve(db, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = Resolve(db, "tok-2")
	assert.ErrorIs(t, err, ErrNoUser)

	_, err = Resolve(db, "")
	assert.ErrorIs(t, err, ErrNoUser)
}
