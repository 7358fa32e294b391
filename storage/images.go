// Package storage is the image store behind avatar and dish photos:
// uploads land on local disk under random names and are served back as
// public URLs from the static /uploads route.
package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported image type")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ImageStore struct {
	dir     string
	baseURL string
}

// NewImageStore creates dir if needed. baseURL is the public path prefix
// the files are served under, e.g. "/uploads".
func NewImageStore(dir, baseURL string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ImageStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a fresh UUID name and returns its
// public URL.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return s.baseURL + "/" + name, nil
}
