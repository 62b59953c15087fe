package domain

import (
	"time"
)

// Tweet represents a text post owned by exactly one user. The creation
// timestamp is server-assigned and immutable; tweets are never edited,
// only created and deleted.
type Tweet struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id" gorm:"not null;index"`
	User    User   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Content string `json:"content" gorm:"type:text;not null"`

	// Attachments are Media rows associated through the tweets_medias join
	// table. A media row may be attached to any number of tweets.
	Attachments []Media `json:"-" gorm:"many2many:tweets_medias;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

// FeedTweet is one fully materialized entry of a user's feed: the tweet
// itself, its author, every liking user, and the public paths of its
// attachments.
type FeedTweet struct {
	ID          int       `json:"id"`
	Content     string    `json:"content"`
	Author      UserRef   `json:"author"`
	Likes       []LikeRef `json:"likes"`
	Attachments []string  `json:"attachments"`
}

// TweetService is a set of methods to manipulate and work with the Tweet model.
type TweetService interface {
	// Create inserts the tweet and associates any resolvable media ids with
	// it in the same transaction. Ids that do not resolve are dropped.
	Create(tweet *Tweet, mediaIDs []int) error
	// Delete removes the tweet identified by tweet.ID, with tweet.UserID
	// naming the acting user for the ownership check.
	Delete(tweet *Tweet) error
	// Feed returns the tweets of all users the viewer follows, ordered
	// descending by like count.
	Feed(viewerID int) ([]FeedTweet, error)
}
