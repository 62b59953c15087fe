package crud

import (
	"errors"

	"gorm.io/gorm"

	"minitweet/domain"
	"minitweet/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeValidator
}

// likeValidator runs validations on incoming Like data.
// On success, it passes the data on to likeGorm.
// Otherwise, it returns the error of the validation that has failed.
type likeValidator struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeValidator{
			likeGorm{
				db: db,
			},
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Create runs validations needed for creating new Like database records.
func (lv *likeValidator) Create(like *domain.Like) error {
	err := runLikeValFns(like,
		lv.likedTweetExists,
		lv.notAlreadyLiked,
	)
	if err != nil {
		return err
	}
	return lv.likeGorm.Create(like)
}

// Delete passes the Like on for deletion. Unliking a tweet that was never
// liked is a no-op success, so no validation is needed.
func (lv *likeValidator) Delete(like *domain.Like) error {
	return lv.likeGorm.Delete(like)
}

// runLikeValFns runs any number of functions of type likeValFn on the passed in Like object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runLikeValFns(like *domain.Like, fns ...likeValFn) error {
	for _, fn := range fns {
		if err := fn(like); err != nil {
			return err
		}
	}
	return nil
}

// A likeValFn is any function that takes in a pointer to a domain.Like object and returns an error.
type likeValFn func(like *domain.Like) error

// likedTweetExists makes sure that the tweet to be liked actually exists.
func (lv *likeValidator) likedTweetExists(like *domain.Like) error {
	err := lv.db.First(&domain.Tweet{}, "id = ?", like.TweetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "The liked tweet does not exist.")
		}
		return err
	}
	return nil
}

// notAlreadyLiked makes sure that the user doesn't already like the tweet.
// A concurrent duplicate that slips past this check is caught as a
// duplicate-key error on the insert.
func (lv *likeValidator) notAlreadyLiked(like *domain.Like) error {
	err := lv.db.First(&domain.Like{}, "user_id = ? AND tweet_id = ?",
		like.UserID, like.TweetID).Error
	if err == nil {
		return errs.Errorf(errs.ECONFLICT, "You already like that tweet.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Create stores the data from the Like object in a new database record.
// The composite primary key decides the winner between concurrent duplicate
// attempts; the loser's constraint violation surfaces as a conflict.
func (lg *likeGorm) Create(like *domain.Like) error {
	if err := lg.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Errorf(errs.ECONFLICT, "You already like that tweet.")
		}
		return err
	}
	return nil
}

// Delete permanently deletes the database record matching the like pair.
// Deleting an absent pair is a no-op success.
func (lg *likeGorm) Delete(like *domain.Like) error {
	return lg.db.Delete(&domain.Like{}, "user_id = ? AND tweet_id = ?",
		like.UserID, like.TweetID).Error
}
