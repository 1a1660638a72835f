// Package storage persists uploaded images on local disk.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
)

// Default placeholder images. They are never written by uploads and never
// removed when their owner is deleted.
const (
	DefaultAvatar     = "default.jpg"
	DefaultArticle    = "default_article.jpg"
	DefaultDiscussion = "default_discussion.jpg"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store saves images under a base directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// IsDefault reports whether filename is one of the built-in placeholders.
func IsDefault(filename string) bool {
	switch filename {
	case DefaultAvatar, DefaultArticle, DefaultDiscussion:
		return true
	}
	return false
}

// sanitizeName keeps only the base name so uploads cannot escape the store.
func sanitizeName(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	return name
}

// Save validates content as an image and writes it under a uuid-prefixed name.
// It returns the stored filename.
func (s *Store) Save(content []byte, filename string) (string, error) {
	name := sanitizeName(filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}

	if _, _, err := image.Decode(bytes.NewReader(content)); err != nil {
		return "", fmt.Errorf("invalid image content: %w", err)
	}

	stored := uuid.NewString() + "_" + name
	if err := os.WriteFile(filepath.Join(s.dir, stored), content, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return stored, nil
}

// Remove deletes a stored image. Placeholder images are left alone and a
// missing file is not an error.
func (s *Store) Remove(filename string) error {
	if filename == "" || IsDefault(filename) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, sanitizeName(filename)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
