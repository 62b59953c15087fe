package crud

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitweet/domain"
	"minitweet/storage"
)

func openUpload(t *testing.T, filename, content string) *domain.Upload {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return &domain.Upload{File: f, Filename: filename}
}

func TestMediaService_Create(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	ms := NewMediaService(db, storage.NewMediaStore(dir))

	t.Run("writes the file and registers a row with the generated name", func(t *testing.T) {
		media, err := ms.Create(openUpload(t, "cat.png", "bytes"))
		require.NoError(t, err)
		assert.Positive(t, media.ID)

		// The row stores only the generated filename, not the full path.
		assert.NotContains(t, media.FilePath, string(os.PathSeparator))

		_, err = os.Stat(filepath.Join(dir, media.FilePath))
		require.NoError(t, err)
	})

	t.Run("a rejected upload leaves no row behind", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&domain.Media{}).Count(&before).Error)

		_, err := ms.Create(openUpload(t, "script.sh", "#!/bin/sh"))
		require.Error(t, err)

		var after int64
		require.NoError(t, db.Model(&domain.Media{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})
}

func TestMediaService_ByIDs(t *testing.T) {
	db := testDB(t)
	ms := NewMediaService(db, storage.NewMediaStore(t.TempDir()))

	one := seedMedia(t, db, "one.png")
	two := seedMedia(t, db, "two.png")

	medias, err := ms.ByIDs([]int{one.ID, two.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, medias, 2)

	medias, err = ms.ByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, medias)
}

func TestMediaService_ByTweetID(t *testing.T) {
	db := testDB(t)
	ms := NewMediaService(db, storage.NewMediaStore(t.TempDir()))
	ts := NewTweetService(db)

	alice := seedUser(t, db, "alice", "key-a")
	media := seedMedia(t, db, "pic.jpg")

	tweet := &domain.Tweet{UserID: alice.ID, Content: "look"}
	require.NoError(t, ts.Create(tweet, []int{media.ID}))

	medias, err := ms.ByTweetID(tweet.ID)
	require.NoError(t, err)
	require.Len(t, medias, 1)
	assert.Equal(t, "pic.jpg", medias[0].FilePath)
	assert.Equal(t, "/media/pic.jpg", medias[0].URL())
}
