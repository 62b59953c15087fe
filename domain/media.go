package domain

import (
	"mime/multipart"
)

// MediaURLPrefix is the static path uploaded files are re-served from.
const MediaURLPrefix = "/media/"

// Media represents an uploaded file registered independently of any tweet.
// FilePath holds only the generated filename, not the full path; attachment
// to tweets happens afterwards by referencing the row id. Deleting a tweet
// never deletes the media row or the file on disk.
type Media struct {
	ID       int    `json:"id"`
	FilePath string `json:"file_path" gorm:"not null"`
}

// TableName keeps the table name the schema expects, since the default
// pluralization of Media does not produce it.
func (Media) TableName() string {
	return "medias"
}

// URL returns the public path the stored file is served from.
func (m *Media) URL() string {
	return MediaURLPrefix + m.FilePath
}

// Upload carries an incoming multipart file through validation and storage.
// Filename is the client-supplied original name, used only to extract the
// extension. Stored is filled in by the file store with the generated
// unique name the bytes were written under.
type Upload struct {
	File      multipart.File `json:"-"`
	Filename  string         `json:"-"`
	Extension string         `json:"-"`
	Stored    string         `json:"-"`
}

// MediaService is a set of methods to manipulate and work with the Media
// model and the underlying files.
type MediaService interface {
	// Create persists the uploaded file and registers a Media row for it.
	// The file is written before the row is inserted, so a failed write
	// never leaves a dangling row.
	Create(upload *Upload) (*Media, error)
	ByIDs(ids []int) ([]Media, error)
	ByTweetID(tweetID int) ([]Media, error)
}
