package domain

// Like represents a many-to-many relationship between a User and a Tweet.
// The composite primary key enforces at most one like per (user, tweet) pair;
// under concurrent duplicate attempts the store picks exactly one winner.
// Likes are destroyed when the user unlikes the tweet or, by cascade, when
// the tweet or the user is deleted.
type Like struct {
	UserID  int   `json:"user_id" gorm:"primaryKey"`
	TweetID int   `json:"tweet_id" gorm:"primaryKey"`
	User    User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tweet   Tweet `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// LikeRef is the id+name rendering of a liking user inside a feed tweet.
type LikeRef struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	Create(like *Like) error
	// Delete is idempotent: removing an absent like is a no-op success.
	Delete(like *Like) error
}
