package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitweet/domain"
	"minitweet/errs"
)

func TestUserService_ByAPIKey(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db)
	seeded := seedUser(t, db, "test", "test-key")

	t.Run("known key returns the matching user", func(t *testing.T) {
		user, err := us.ByAPIKey("test-key")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)
		assert.Equal(t, "test", user.Name)
	})

	t.Run("unknown key is unauthenticated", func(t *testing.T) {
		_, err := us.ByAPIKey("nope")
		require.Error(t, err)
		assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
	})
}

func TestUserService_Create(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db)

	t.Run("generates an API key when none is set", func(t *testing.T) {
		user := &domain.User{Name: "alice"}
		require.NoError(t, us.Create(user))
		assert.NotZero(t, user.ID)
		assert.NotEmpty(t, user.APIKey)
	})

	t.Run("name is required", func(t *testing.T) {
		err := us.Create(&domain.User{Name: "  "})
		require.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	})
}

func TestUserService_ByID(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db)
	fs := NewFollowService(db)

	alice := seedUser(t, db, "alice", "key-a")
	bob := seedUser(t, db, "bob", "key-b")
	carol := seedUser(t, db, "carol", "key-c")

	// alice follows bob, carol follows bob, bob follows carol.
	require.NoError(t, fs.Create(&domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))
	require.NoError(t, fs.Create(&domain.Follow{FollowerID: carol.ID, FollowingID: bob.ID}))
	require.NoError(t, fs.Create(&domain.Follow{FollowerID: bob.ID, FollowingID: carol.ID}))

	t.Run("materializes followers and following", func(t *testing.T) {
		profile, err := us.ByID(bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", profile.Name)
		assert.ElementsMatch(t, []domain.UserRef{
			{ID: alice.ID, Name: "alice"},
			{ID: carol.ID, Name: "carol"},
		}, profile.Followers)
		assert.Equal(t, []domain.UserRef{{ID: carol.ID, Name: "carol"}}, profile.Following)
	})

	t.Run("empty lists are empty, not nil", func(t *testing.T) {
		profile, err := us.ByID(alice.ID)
		require.NoError(t, err)
		assert.NotNil(t, profile.Followers)
		assert.Empty(t, profile.Followers)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := us.ByID(9999)
		require.Error(t, err)
		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})
}
