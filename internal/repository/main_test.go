package repository

import (
	"context"
	"testing"

	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB returns a migrated, private in-memory SQLite database.
func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.NewTestDB(t)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:    username,
		Password:    "hash",
		DisplayName: username,
		Email:       username + "@example.com",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsCode(err, code), "expected %s, got %v", code, err)
}
