package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrBadFilename = errors.New("invalid filename")

// ImageStore writes uploaded book covers under a local directory and
// hands back the URL the book record stores.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) *ImageStore { return &ImageStore{dir: dir} }

// SanitizeFilename keeps only the base name and a safe character set,
// in the spirit of werkzeug's secure_filename. Collisions between
// sanitized names overwrite the previous file.
func SanitizeFilename(name string) (string, error) {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "", ErrBadFilename
	}
	return out, nil
}

// Save persists the uploaded file and returns the public URL for it.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	name, err := SanitizeFilename(fh.Filename)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/static/IMAGE/" + name, nil
}
