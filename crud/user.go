package crud

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"gorm.io/gorm"

	"minitweet/domain"
	"minitweet/errs"
)

// UserService manages Users. It also backs the authentication check: every
// request's api-key header is resolved to a user through ByAPIKey.
// It implements the domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs validations on incoming User data.
// On success, it passes the data on to userGorm.
// Otherwise, it returns the error of the validation that has failed.
type userValidator struct {
	userGorm
}

// userGorm runs CRUD operations on the database using incoming User data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type userGorm struct {
	db *gorm.DB
}

// NewUserService returns an instance of UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userValidator{
			userGorm{
				db: db,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// Create runs validations needed for creating new User database records.
// It generates a random API key if none is provided. Users are only created
// through seeding and tests, there is no registration endpoint.
func (uv *userValidator) Create(user *domain.User) error {
	err := runUserValFns(user,
		uv.nameRequired,
		uv.apiKeySetIfUnset,
	)
	if err != nil {
		return err
	}
	return uv.userGorm.Create(user)
}

// runUserValFns runs any number of functions of type userValFn on the passed in User object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runUserValFns(user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object and returns an error.
type userValFn func(user *domain.User) error

// nameRequired makes sure that the user's display name is not empty.
func (uv *userValidator) nameRequired(user *domain.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return errs.Errorf(errs.EINVALID, "A user name is required.")
	}
	return nil
}

// apiKeySetIfUnset generates a random 128-bit API key for the user if none
// has been provided.
func (uv *userValidator) apiKeySetIfUnset(user *domain.User) error {
	if user.APIKey != "" {
		return nil
	}
	key, err := makeAPIKey()
	if err != nil {
		return err
	}
	user.APIKey = key
	return nil
}

// makeAPIKey returns a random url-safe key with 128 bits of entropy.
func makeAPIKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ByAPIKey looks up the single user whose stored API key equals the
// submitted one. The comparison is exact-match; keys are neither hashed nor
// do they expire. Zero matches means the caller is not authenticated.
func (ug *userGorm) ByAPIKey(key string) (*domain.User, error) {
	var user domain.User
	err := ug.db.First(&user, "api_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.EUNAUTHORIZED, "Invalid API key.")
		}
		return nil, err
	}
	return &user, nil
}

// ByID loads a user plus its full followers and following lists. Both lists
// are materialized here with explicit join queries.
func (ug *userGorm) ByID(id int) (*domain.Profile, error) {
	var user domain.User
	err := ug.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "User not found.")
		}
		return nil, err
	}

	profile := &domain.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Followers: []domain.UserRef{},
		Following: []domain.UserRef{},
	}

	err = ug.db.Model(&domain.User{}).
		Select("users.id, users.name").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", id).
		Scan(&profile.Followers).Error
	if err != nil {
		return nil, err
	}

	err = ug.db.Model(&domain.User{}).
		Select("users.id, users.name").
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", id).
		Scan(&profile.Following).Error
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// Create stores the data from the User object in a new database record.
func (ug *userGorm) Create(user *domain.User) error {
	if err := ug.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Errorf(errs.ECONFLICT, "That API key is already taken.")
		}
		return err
	}
	return nil
}
