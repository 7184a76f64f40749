package database

import (
	"testing"
	"time"

	"votebox/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_EnforcesUniqueRoomCode(t *testing.T) {
	db, err := OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	now := time.Now()
	require.NoError(t, db.Create(&models.Room{Code: "ABC234", LastUpdated: now}).Error)
	assert.Error(t, db.Create(&models.Room{Code: "ABC234", LastUpdated: now}).Error)
}

func TestMigrate_EnforcesUniqueSessionDigest(t *testing.T) {
	db, err := OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	now := time.Now()
	require.NoError(t, db.Create(&models.User{SessionDigest: "d1", Name: "a", LastUpdated: now}).Error)
	assert.Error(t, db.Create(&models.User{SessionDigest: "d1", Name: "b", LastUpdated: now}).Error)
}
