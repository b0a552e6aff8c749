package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/segmentio/ksuid"
)

// ErrUnsupportedImage is returned for uploads whose extension is not a
// recognized image type.
var ErrUnsupportedImage = errors.New("unsupported image type")

// imageExts are the file extensions served and accepted by the gallery.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename strips any directory components from name and
// replaces every character outside [A-Za-z0-9._-] with an underscore.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_")
}

// GalleryService stores and lists event images in a flat directory.
// Uploading is admin-gated at the HTTP boundary; listing is open to any
// authenticated user.
type GalleryService struct {
	dir string

	// newID is injectable for tests.
	newID func() string
}

// NewGalleryService constructs a GalleryService over dir, creating the
// directory if needed.
func NewGalleryService(dir string) (*GalleryService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create gallery dir: %w", err)
	}
	return &GalleryService{dir: dir, newID: func() string { return ksuid.New().String() }}, nil
}

// Dir returns the gallery directory path.
func (g *GalleryService) Dir() string {
	return g.dir
}

// List returns the gallery's image filenames in sorted order. A missing
// directory is recreated and yields an empty list.
func (g *GalleryService) List() ([]string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create gallery dir: %w", err)
	}

	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return nil, fmt.Errorf("read gallery dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Save writes an uploaded image into the gallery. The client filename
// is sanitized and prefixed with a fresh ksuid so uploads never collide.
// Returns the stored filename.
func (g *GalleryService) Save(name string, r io.Reader) (string, error) {
	clean := SanitizeFilename(name)
	if !imageExts[strings.ToLower(filepath.Ext(clean))] {
		return "", ErrUnsupportedImage
	}

	stored := g.newID() + "_" + clean
	path := filepath.Join(g.dir, stored)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	return stored, nil
}
