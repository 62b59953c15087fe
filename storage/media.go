package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"minitweet/domain"
	"minitweet/errs"
)

// MaxUploadSize determines the maximum filesize of a media file to be uploaded.
const MaxUploadSize int64 = 5 << 20 // 5 Megabyte

// allowedExtensions is the upload extension allow-list.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// NewMediaStore returns a MediaStore writing into dir.
func NewMediaStore(dir string) *MediaStore {
	return &MediaStore{
		uploadValidator{
			mediaDisk{
				dir: dir,
			},
		},
	}
}

// MediaStore persists uploaded media files on the local filesystem.
type MediaStore struct {
	uploadValidator
}

// uploadValidator runs validations on an incoming Upload.
// On success, it passes the upload on to mediaDisk.
// Otherwise, it returns the error of the validation that has failed.
type uploadValidator struct {
	mediaDisk
}

// mediaDisk writes validated uploads into the store's directory.
type mediaDisk struct {
	dir string
}

// Dir returns the directory the store writes into.
func (md *mediaDisk) Dir() string {
	return md.dir
}

// Save runs validations needed for storing a new media file, then writes it.
func (uv *uploadValidator) Save(upload *domain.Upload) error {
	err := runUploadValFns(upload,
		uv.extensionValid,
		uv.belowMaxSize,
		uv.fileNameUnique,
	)
	if err != nil {
		return err
	}
	return uv.mediaDisk.Save(upload)
}

// runUploadValFns runs any number of functions of type uploadValFn on the passed
// in Upload object. If none of them returns an error, it returns nil. Otherwise,
// it returns the respective error.
func runUploadValFns(upload *domain.Upload, fns ...uploadValFn) error {
	for _, fn := range fns {
		if err := fn(upload); err != nil {
			return err
		}
	}
	return nil
}

// An uploadValFn is any function that takes in a pointer to a domain.Upload
// object and returns an error.
type uploadValFn func(upload *domain.Upload) error

// extensionValid makes sure the extension of the original filename is on the
// allow-list. The original filename is used for nothing else.
func (uv *uploadValidator) extensionValid(upload *domain.Upload) error {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExtensions[ext] {
		return errs.Errorf(
			errs.EINVALID,
			"File %s has an invalid extension, must be one of .jpg, .jpeg, .png, .gif.", upload.Filename,
		)
	}
	upload.Extension = ext
	return nil
}

// belowMaxSize makes sure the upload does not exceed the size limit.
func (uv *uploadValidator) belowMaxSize(upload *domain.Upload) error {
	size, err := upload.File.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if err = resetReaderPosition(upload); err != nil {
		return err
	}
	if size > MaxUploadSize {
		return errs.Errorf(
			errs.EINVALID,
			"File %s exceeds the upload size limit of %sMB.", upload.Filename, strconv.FormatInt(MaxUploadSize/1000000, 10),
		)
	}
	return nil
}

// fileNameUnique generates the name the file will be stored under. A random
// 128-bit identifier keeps the collision probability negligible.
func (uv *uploadValidator) fileNameUnique(upload *domain.Upload) error {
	upload.Stored = uuid.New().String() + upload.Extension
	return nil
}

// resetReaderPosition seeks back to the beginning of the file, so that
// subsequent reads will work.
func resetReaderPosition(upload *domain.Upload) error {
	_, err := upload.File.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	return nil
}

// Save writes the upload into the store's directory under its generated name.
func (md *mediaDisk) Save(upload *domain.Upload) error {
	if err := os.MkdirAll(md.dir, 0755); err != nil {
		return fmt.Errorf("err creating media directory: %w", err)
	}
	dst, err := os.Create(filepath.Join(md.dir, upload.Stored))
	if err != nil {
		return fmt.Errorf("err creating media file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, upload.File); err != nil {
		return fmt.Errorf("err writing media file: %w", err)
	}
	return nil
}

// Remove deletes a previously stored file. Used to roll back a write whose
// database registration failed.
func (md *mediaDisk) Remove(stored string) error {
	return os.Remove(filepath.Join(md.dir, stored))
}
