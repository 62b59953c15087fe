package crud

import (
	"gorm.io/gorm"

	"minitweet/domain"
	"minitweet/storage"
)

// MediaService manages Media rows and, through the file store, the uploaded
// files they reference. It implements the domain.MediaService interface.
// Validation of uploads (extension allow-list, size limit) lives in the
// file store, next to the bytes it guards.
type MediaService struct {
	mediaGorm
}

// mediaGorm runs CRUD operations on the database using incoming Media data,
// delegating file writes to the store.
type mediaGorm struct {
	db    *gorm.DB
	store *storage.MediaStore
}

// NewMediaService returns an instance of MediaService.
func NewMediaService(db *gorm.DB, store *storage.MediaStore) *MediaService {
	return &MediaService{
		mediaGorm{
			db:    db,
			store: store,
		},
	}
}

// Ensure the MediaService struct properly implements the domain.MediaService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.MediaService = &MediaService{}

// Create persists the uploaded file and registers a Media row referencing
// its generated filename. The write happens first: a failed write never
// leaves a row, and a failed insert removes the file again.
func (mg *mediaGorm) Create(upload *domain.Upload) (*domain.Media, error) {
	if err := mg.store.Save(upload); err != nil {
		return nil, err
	}
	media := &domain.Media{FilePath: upload.Stored}
	if err := mg.db.Create(media).Error; err != nil {
		mg.store.Remove(upload.Stored)
		return nil, err
	}
	return media, nil
}

// ByIDs resolves media ids against existing rows. Ids without a row are
// simply absent from the result, not an error.
func (mg *mediaGorm) ByIDs(ids []int) ([]domain.Media, error) {
	var medias []domain.Media
	if len(ids) == 0 {
		return medias, nil
	}
	err := mg.db.Where("id IN ?", ids).Find(&medias).Error
	if err != nil {
		return nil, err
	}
	return medias, nil
}

// ByTweetID returns the materialized attachment list of a tweet.
func (mg *mediaGorm) ByTweetID(tweetID int) ([]domain.Media, error) {
	var medias []domain.Media
	err := mg.db.Model(&domain.Media{}).
		Joins("JOIN tweets_medias ON tweets_medias.media_id = medias.id").
		Where("tweets_medias.tweet_id = ?", tweetID).
		Find(&medias).Error
	if err != nil {
		return nil, err
	}
	return medias, nil
}
