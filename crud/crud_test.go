package crud

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"minitweet/domain"
)

// testDB opens a fresh in-memory sqlite database with the full schema.
// A single connection keeps the in-memory database alive and makes the
// foreign_keys pragma stick, so cascade deletes behave like postgres.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Tweet{},
		&domain.Follow{},
		&domain.Like{},
		&domain.Media{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, apiKey string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, APIKey: apiKey}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTweet(t *testing.T, db *gorm.DB, userID int, content string) *domain.Tweet {
	t.Helper()
	tweet := &domain.Tweet{UserID: userID, Content: content}
	require.NoError(t, db.Create(tweet).Error)
	return tweet
}

func seedMedia(t *testing.T, db *gorm.DB, filePath string) *domain.Media {
	t.Helper()
	media := &domain.Media{FilePath: filePath}
	require.NoError(t, db.Create(media).Error)
	return media
}
