package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitweet/domain"
	"minitweet/errs"
)

func TestTweetService_Create(t *testing.T) {
	db := testDB(t)
	ts := NewTweetService(db)
	alice := seedUser(t, db, "alice", "key-a")

	t.Run("creates a tweet", func(t *testing.T) {
		tweet := &domain.Tweet{UserID: alice.ID, Content: "hello world"}
		require.NoError(t, ts.Create(tweet, nil))
		assert.NotZero(t, tweet.ID)
		assert.False(t, tweet.CreatedAt.IsZero())
	})

	t.Run("attaches resolvable media ids and drops the rest", func(t *testing.T) {
		media := seedMedia(t, db, "cat.png")

		tweet := &domain.Tweet{UserID: alice.ID, Content: "with media"}
		require.NoError(t, ts.Create(tweet, []int{media.ID, 9999}))

		var attached []domain.Media
		err := db.Model(&domain.Media{}).
			Joins("JOIN tweets_medias ON tweets_medias.media_id = medias.id").
			Where("tweets_medias.tweet_id = ?", tweet.ID).
			Find(&attached).Error
		require.NoError(t, err)
		require.Len(t, attached, 1)
		assert.Equal(t, "cat.png", attached[0].FilePath)
	})

	t.Run("empty content is invalid", func(t *testing.T) {
		err := ts.Create(&domain.Tweet{UserID: alice.ID, Content: " "}, nil)
		require.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	})
}

func TestTweetService_Delete(t *testing.T) {
	db := testDB(t)
	ts := NewTweetService(db)
	ls := NewLikeService(db)

	alice := seedUser(t, db, "alice", "key-a")
	bob := seedUser(t, db, "bob", "key-b")

	t.Run("deleting a nonexistent tweet is not found", func(t *testing.T) {
		err := ts.Delete(&domain.Tweet{ID: 9999, UserID: alice.ID})
		require.Error(t, err)
		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})

	t.Run("deleting another user's tweet is forbidden", func(t *testing.T) {
		tweet := seedTweet(t, db, bob.ID, "bobs tweet")
		err := ts.Delete(&domain.Tweet{ID: tweet.ID, UserID: alice.ID})
		require.Error(t, err)
		assert.Equal(t, errs.EFORBIDDEN, errs.ErrorCode(err))
	})

	t.Run("deleting an own tweet cascades its likes", func(t *testing.T) {
		tweet := seedTweet(t, db, alice.ID, "to delete")
		require.NoError(t, ls.Create(&domain.Like{UserID: bob.ID, TweetID: tweet.ID}))

		require.NoError(t, ts.Delete(&domain.Tweet{ID: tweet.ID, UserID: alice.ID}))

		var likes int64
		require.NoError(t, db.Model(&domain.Like{}).Where("tweet_id = ?", tweet.ID).Count(&likes).Error)
		assert.Zero(t, likes)

		// Re-deleting reports absence, not success.
		err := ts.Delete(&domain.Tweet{ID: tweet.ID, UserID: alice.ID})
		require.Error(t, err)
		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})

	t.Run("media rows survive the tweet they were attached to", func(t *testing.T) {
		media := seedMedia(t, db, "keep.png")
		tweet := &domain.Tweet{UserID: alice.ID, Content: "attached"}
		require.NoError(t, ts.Create(tweet, []int{media.ID}))

		require.NoError(t, ts.Delete(&domain.Tweet{ID: tweet.ID, UserID: alice.ID}))

		var medias int64
		require.NoError(t, db.Model(&domain.Media{}).Where("id = ?", media.ID).Count(&medias).Error)
		assert.EqualValues(t, 1, medias)
	})
}

func TestTweetService_Feed(t *testing.T) {
	db := testDB(t)
	ts := NewTweetService(db)
	ls := NewLikeService(db)
	fs := NewFollowService(db)

	alice := seedUser(t, db, "alice", "key-a")
	bob := seedUser(t, db, "bob", "key-b")
	carol := seedUser(t, db, "carol", "key-c")

	t.Run("no follows means an empty feed, not an error", func(t *testing.T) {
		feed, err := ts.Feed(alice.ID)
		require.NoError(t, err)
		assert.NotNil(t, feed)
		assert.Empty(t, feed)
	})

	require.NoError(t, fs.Create(&domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	zeroLikes := seedTweet(t, db, bob.ID, "unloved")
	twoLikes := seedTweet(t, db, bob.ID, "popular")
	notFollowed := seedTweet(t, db, carol.ID, "invisible")

	require.NoError(t, ls.Create(&domain.Like{UserID: alice.ID, TweetID: twoLikes.ID}))
	require.NoError(t, ls.Create(&domain.Like{UserID: carol.ID, TweetID: twoLikes.ID}))

	media := seedMedia(t, db, "pic.png")
	require.NoError(t, db.Exec("INSERT INTO tweets_medias (tweet_id, media_id) VALUES (?, ?)", zeroLikes.ID, media.ID).Error)

	t.Run("orders by like count with zero-like tweets included", func(t *testing.T) {
		feed, err := ts.Feed(alice.ID)
		require.NoError(t, err)
		require.Len(t, feed, 2)

		assert.Equal(t, twoLikes.ID, feed[0].ID)
		assert.Equal(t, zeroLikes.ID, feed[1].ID)
		assert.Equal(t, domain.UserRef{ID: bob.ID, Name: "bob"}, feed[0].Author)
		assert.ElementsMatch(t, []domain.LikeRef{
			{UserID: alice.ID, Name: "alice"},
			{UserID: carol.ID, Name: "carol"},
		}, feed[0].Likes)
		assert.Empty(t, feed[1].Likes)

		assert.Equal(t, []string{"/media/pic.png"}, feed[1].Attachments)

		for _, entry := range feed {
			assert.NotEqual(t, notFollowed.ID, entry.ID)
		}
	})

	t.Run("ties break newest first", func(t *testing.T) {
		older := seedTweet(t, db, bob.ID, "tie older")
		newer := seedTweet(t, db, bob.ID, "tie newer")

		feed, err := ts.Feed(alice.ID)
		require.NoError(t, err)
		require.Len(t, feed, 4)

		// Both tied at zero likes: the newer tweet id comes first.
		assert.Equal(t, newer.ID, feed[1].ID)
		assert.Equal(t, older.ID, feed[2].ID)
	})
}
