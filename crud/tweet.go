package crud

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"minitweet/domain"
	"minitweet/errs"
)

// TweetService manages Tweets, including the feed computation.
// It implements the domain.TweetService interface.
type TweetService struct {
	tweetValidator
}

// tweetValidator runs validations on incoming Tweet data.
// On success, it passes the data on to tweetGorm.
// Otherwise, it returns the error of the validation that has failed.
type tweetValidator struct {
	tweetGorm
}

// tweetGorm runs CRUD operations on the database using incoming Tweet data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type tweetGorm struct {
	db *gorm.DB
}

// NewTweetService returns an instance of TweetService.
func NewTweetService(db *gorm.DB) *TweetService {
	return &TweetService{
		tweetValidator{
			tweetGorm{
				db: db,
			},
		},
	}
}

// Ensure the TweetService struct properly implements the domain.TweetService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.TweetService = &TweetService{}

// Create runs validations needed for creating new Tweet database records.
func (tv *tweetValidator) Create(tweet *domain.Tweet, mediaIDs []int) error {
	err := runTweetValFns(tweet,
		tv.userIDValid,
		tv.contentRequired,
	)
	if err != nil {
		return err
	}
	return tv.tweetGorm.Create(tweet, mediaIDs)
}

// Delete runs validations needed for deleting existing Tweet database records.
// The incoming Tweet carries the ID of the tweet to delete and, in UserID,
// the acting user for the ownership check.
func (tv *tweetValidator) Delete(tweet *domain.Tweet) error {
	err := runTweetValFns(tweet,
		tv.tweetExists,
		tv.ownedByActor,
	)
	if err != nil {
		return err
	}
	return tv.tweetGorm.Delete(tweet)
}

// runTweetValFns runs any number of functions of type tweetValFn on the passed in Tweet object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runTweetValFns(tweet *domain.Tweet, fns ...tweetValFn) error {
	for _, fn := range fns {
		if err := fn(tweet); err != nil {
			return err
		}
	}
	return nil
}

// A tweetValFn is any function that takes in a pointer to a domain.Tweet object and returns an error.
type tweetValFn func(tweet *domain.Tweet) error

// userIDValid ensures that the authoring user id is set.
func (tv *tweetValidator) userIDValid(tweet *domain.Tweet) error {
	if tweet.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A tweet author is required.")
	}
	return nil
}

// contentRequired makes sure that the tweet's content is not empty.
// There is deliberately no maximum length.
func (tv *tweetValidator) contentRequired(tweet *domain.Tweet) error {
	if strings.TrimSpace(tweet.Content) == "" {
		return errs.Errorf(errs.EINVALID, "Tweet content must not be empty.")
	}
	return nil
}

// tweetExists makes sure that the tweet to be deleted actually exists.
func (tv *tweetValidator) tweetExists(tweet *domain.Tweet) error {
	err := tv.db.First(&domain.Tweet{}, "id = ?", tweet.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "The tweet does not exist.")
		}
		return err
	}
	return nil
}

// ownedByActor makes sure that the acting user owns the tweet to be deleted.
func (tv *tweetValidator) ownedByActor(tweet *domain.Tweet) error {
	var existing domain.Tweet
	if err := tv.db.First(&existing, "id = ?", tweet.ID).Error; err != nil {
		return err
	}
	if existing.UserID != tweet.UserID {
		return errs.Errorf(errs.EFORBIDDEN, "You are not allowed to delete this tweet.")
	}
	return nil
}

// Create stores the data from the Tweet object in a new database record.
// Incoming media ids are resolved against existing medias rows first; ids
// that do not resolve are silently dropped. The tweet insert and the join
// rows for its attachments commit as a single transaction.
func (tg *tweetGorm) Create(tweet *domain.Tweet, mediaIDs []int) error {
	if len(mediaIDs) > 0 {
		var medias []domain.Media
		if err := tg.db.Where("id IN ?", mediaIDs).Find(&medias).Error; err != nil {
			return err
		}
		tweet.Attachments = medias
	}
	return tg.db.Create(tweet).Error
}

// Delete permanently deletes a Tweet record. Likes and attachment
// associations referencing it are removed by the store's cascades; the
// media rows and files themselves stay.
func (tg *tweetGorm) Delete(tweet *domain.Tweet) error {
	return tg.db.Delete(&domain.Tweet{}, "id = ?", tweet.ID).Error
}

// feedRow is the scan target of the feed aggregate query.
type feedRow struct {
	ID         int
	UserID     int
	Content    string
	AuthorName string
	LikeCount  int
}

// Feed computes the viewer's feed: all tweets authored by followed users,
// each with its author's name and total like count, ordered descending by
// like count. Tweets with zero likes are included through the outer join.
// Ties are broken by tweet id descending, so equally liked tweets come
// newest first. For every tweet the full list of liking users and the
// attachment paths are materialized with explicit follow-up queries.
func (tg *tweetGorm) Feed(viewerID int) ([]domain.FeedTweet, error) {
	var followingIDs []int
	err := tg.db.Model(&domain.Follow{}).
		Where("follower_id = ?", viewerID).
		Pluck("following_id", &followingIDs).Error
	if err != nil {
		return nil, err
	}

	// Following nobody is an empty feed, not an error.
	feed := []domain.FeedTweet{}
	if len(followingIDs) == 0 {
		return feed, nil
	}

	var rows []feedRow
	err = tg.db.Model(&domain.Tweet{}).
		Select("tweets.id, tweets.user_id, tweets.content, users.name AS author_name, COUNT(likes.user_id) AS like_count").
		Joins("JOIN users ON users.id = tweets.user_id").
		Joins("LEFT JOIN likes ON likes.tweet_id = tweets.id").
		Where("tweets.user_id IN ?", followingIDs).
		Group("tweets.id, users.name").
		Order("like_count DESC, tweets.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		likes := []domain.LikeRef{}
		err = tg.db.Model(&domain.User{}).
			Select("users.id AS user_id, users.name").
			Joins("JOIN likes ON likes.user_id = users.id").
			Where("likes.tweet_id = ?", row.ID).
			Scan(&likes).Error
		if err != nil {
			return nil, err
		}

		var medias []domain.Media
		err = tg.db.Model(&domain.Media{}).
			Joins("JOIN tweets_medias ON tweets_medias.media_id = medias.id").
			Where("tweets_medias.tweet_id = ?", row.ID).
			Find(&medias).Error
		if err != nil {
			return nil, err
		}
		attachments := []string{}
		for i := range medias {
			attachments = append(attachments, medias[i].URL())
		}

		feed = append(feed, domain.FeedTweet{
			ID:      row.ID,
			Content: row.Content,
			Author: domain.UserRef{
				ID:   row.UserID,
				Name: row.AuthorName,
			},
			Likes:       likes,
			Attachments: attachments,
		})
	}
	return feed, nil
}
