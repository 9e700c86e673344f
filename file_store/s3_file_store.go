package file_store

import (
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const defaultRegion = "us-west-1"

// S3FileStore uploads files to an S3 bucket, typically fronted by a CDN
// whose hostname is the configured URL prefix.
type S3FileStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
}

func NewS3FileStore(bucket, urlPrefix string) (*S3FileStore, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultRegion
	}

	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:    bucket,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

func (s *S3FileStore) Store(name string, body io.Reader) (string, error) {
	key, err := generateKey(name)
	if err != nil {
		return "", err
	}

	_, err = s.uploader.Upload(&s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}

	return s.urlPrefix + "/" + key, nil
}
