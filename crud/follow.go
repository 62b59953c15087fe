package crud

import (
	"errors"

	"gorm.io/gorm"

	"minitweet/domain"
	"minitweet/errs"
)

// FollowService manages Follows.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Create runs validations needed for creating new Follow database records.
func (fv *followValidator) Create(follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.notSelf,
		fv.followedExists,
		fv.notAlreadyFollowing,
	)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(follow)
}

// Delete passes the Follow on for deletion. Absence of the record is not an
// error, so no validation is needed.
func (fv *followValidator) Delete(follow *domain.Follow) error {
	return fv.followGorm.Delete(follow)
}

// runFollowValFns runs any number of functions of type followValFn on the passed in Follow object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow object and returns an error.
type followValFn func(follow *domain.Follow) error

// notSelf makes sure that a user is not trying to follow themselves.
func (fv *followValidator) notSelf(follow *domain.Follow) error {
	if follow.FollowerID == follow.FollowingID {
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}
	return nil
}

// followedExists makes sure that the user to be followed actually exists.
func (fv *followValidator) followedExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.FollowingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}
	return nil
}

// notAlreadyFollowing makes sure that the follow pair does not exist yet.
// A concurrent duplicate that slips past this check is caught as a
// duplicate-key error on the insert.
func (fv *followValidator) notAlreadyFollowing(follow *domain.Follow) error {
	err := fv.db.First(&domain.Follow{}, "follower_id = ? AND following_id = ?",
		follow.FollowerID, follow.FollowingID).Error
	if err == nil {
		return errs.Errorf(errs.ECONFLICT, "You already follow that user.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Create stores the data from the Follow object in a new database record.
// The composite primary key decides the winner between concurrent duplicate
// attempts; the loser's constraint violation surfaces as a conflict.
func (fg *followGorm) Create(follow *domain.Follow) error {
	if err := fg.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Errorf(errs.ECONFLICT, "You already follow that user.")
		}
		return err
	}
	return nil
}

// Delete permanently deletes the database record matching the follow pair.
// Deleting an absent pair is a no-op success.
func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.Delete(&domain.Follow{}, "follower_id = ? AND following_id = ?",
		follow.FollowerID, follow.FollowingID).Error
}
