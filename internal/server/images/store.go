// Package images decides where uploaded post images and avatars live: inline
// as data: URLs, or as objects in an S3-compatible bucket.
package images

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

// Store saves an uploaded image and returns the URL clients should load it
// from. kind groups objects by use ("posts", "avatars"). A nil or empty
// image yields "".
type Store interface {
	Save(ctx context.Context, kind string, img *models.Image) (string, error)
}

// Inline keeps images inside the documents as data: URLs.
type Inline struct{}

func (Inline) Save(_ context.Context, _ string, img *models.Image) (string, error) {
	return img.DataURL(), nil
}
