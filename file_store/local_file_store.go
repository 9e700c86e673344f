package file_store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalFileStore writes uploads to the local filesystem, served by the
// router's static /uploads mount.
type LocalFileStore struct {
	dir string
}

func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalFileStore{dir: dir}, nil
}

func (s *LocalFileStore) Store(name string, body io.Reader) (string, error) {
	fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), strings.ReplaceAll(name, " ", "_"))
	localPath := filepath.Join(s.dir, fileName)

	file, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	// io.Copy streams the body straight to disk, this supports huge files
	if _, err := io.Copy(file, body); err != nil {
		return "", err
	}

	return "/uploads/" + fileName, nil
}
