package database

import (
	"testing"

	"github.com/Zarsham27/social-networking-web-app/internal/config"
	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector(&config.Config{DBDriver: "postgres", DBHost: "localhost"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestConfigurePool(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, configurePool(db, &config.Config{DBDriver: "sqlite"}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestMigrate_UniqueIndexes(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, db.Create(&models.Follow{Follower: "alice", Followee: "bob"}).Error)
	err := db.Create(&models.Follow{Follower: "alice", Followee: "bob"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Create(&models.Like{PostID: 1, Username: "alice"}).Error)
	err = db.Create(&models.Like{PostID: 1, Username: "alice"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMigrate_PendingFriendRequestIndexIsPartial(t *testing.T) {
	db := openMemory(t)

	first := models.FriendRequest{FromUsername: "bob", ToUsername: "alice", Status: models.FriendRequestPending}
	require.NoError(t, db.Create(&first).Error)

	dup := models.FriendRequest{FromUsername: "bob", ToUsername: "alice", Status: models.FriendRequestPending}
	assert.ErrorIs(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Model(&first).Update("status", models.FriendRequestAccepted).Error)

	again := models.FriendRequest{FromUsername: "bob", ToUsername: "alice", Status: models.FriendRequestPending}
	assert.NoError(t, db.Create(&again).Error)
}
