package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitweet/domain"
	"minitweet/errs"
)

func TestFollowService_Create(t *testing.T) {
	db := testDB(t)
	fs := NewFollowService(db)

	alice := seedUser(t, db, "alice", "key-a")
	bob := seedUser(t, db, "bob", "key-b")

	t.Run("follows another user", func(t *testing.T) {
		err := fs.Create(&domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
		require.NoError(t, err)
	})

	t.Run("following the same user twice is a conflict", func(t *testing.T) {
		err := fs.Create(&domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
		require.Error(t, err)
		assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))
	})

	t.Run("following yourself is invalid", func(t *testing.T) {
		err := fs.Create(&domain.Follow{FollowerID: alice.ID, FollowingID: alice.ID})
		require.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	})

	t.Run("following a nonexistent user is not found", func(t *testing.T) {
		err := fs.Create(&domain.Follow{FollowerID: alice.ID, FollowingID: 9999})
		require.Error(t, err)
		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})
}

func TestFollowService_Delete(t *testing.T) {
	db := testDB(t)
	fs := NewFollowService(db)

	alice := seedUser(t, db, "alice", "key-a")
	bob := seedUser(t, db, "bob", "key-b")
	require.NoError(t, fs.Create(&domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	t.Run("unfollows a followed user", func(t *testing.T) {
		err := fs.Delete(&domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&domain.Follow{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unfollowing again is a no-op success", func(t *testing.T) {
		err := fs.Delete(&domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
		require.NoError(t, err)
	})
}
