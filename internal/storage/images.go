package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Images writes uploaded cover images to a flat directory. Files are
// renamed to a random UUID so the original name never reaches disk.
type Images struct {
	Dir string
}

func NewImages(dir string) (*Images, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Images{Dir: dir}, nil
}

// Save stores r under a fresh name and returns that name (not a path).
func (s *Images) Save(r io.Reader, origName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(origName))
	if !allowedExt[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored image, ignoring names that are already gone.
func (s *Images) Remove(name string) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return
	}
	_ = os.Remove(filepath.Join(s.Dir, name))
}
