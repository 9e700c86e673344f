package file_store

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/inkpress/inkpress/utils"
)

// FileStore persists an uploaded file and returns the public URL it will
// be served from.
type FileStore interface {
	Store(name string, body io.Reader) (url string, err error)
}

// NewFromEnv picks the backend: S3 when UPLOAD_S3_BUCKET is set,
// otherwise local disk under public/uploads.
func NewFromEnv() (FileStore, error) {
	if bucket := os.Getenv("UPLOAD_S3_BUCKET"); bucket != "" {
		return NewS3FileStore(bucket, os.Getenv("UPLOAD_URL_PREFIX"))
	}
	return NewLocalFileStore("public/uploads")
}

// generateKey builds a collision-resistant object key from the uploaded
// file name: md5 of name plus timestamp, keeping the original extension.
func generateKey(name string) (string, error) {
	key, err := utils.TextToMd5Hash(fmt.Sprintf("%s-%d", name, time.Now().UnixNano()))
	if err != nil {
		return "", err
	}
	return key + utils.FileExtWithDot(name), nil
}
