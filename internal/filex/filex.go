// Package filex holds small file helpers: preparing directories for local
// state and loading or sniffing uploaded images.
package filex

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const MaxImageSize = 5 << 20

var (
	ErrNotImage      = errors.New("file is not a supported image")
	ErrImageTooLarge = errors.New("image is too large")
)

// EnsureParentDir creates the directory that will hold path, if any.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadImage loads a JPEG, PNG, GIF or WebP file of at most MaxImageSize bytes
// and returns its base name with the contents. A leading "~/" is expanded.
func ReadImage(path string) (string, []byte, error) {
	path = strings.TrimSpace(path)
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil, err
		}
		path = filepath.Join(home, rest)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return "", nil, err
	}
	if fi.IsDir() {
		return "", nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxImageSize {
		return "", nil, fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, fi.Size(), MaxImageSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	if _, err := ImageType(data); err != nil {
		return "", nil, fmt.Errorf("%w: %s", err, filepath.Base(path))
	}

	return filepath.Base(path), data, nil
}

// ImageType sniffs data and returns its MIME type when it is a JPEG, PNG,
// GIF or WebP image.
func ImageType(data []byte) (string, error) {
	switch ct := http.DetectContentType(data); ct {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return ct, nil
	default:
		return "", ErrNotImage
	}
}
