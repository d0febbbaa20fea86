package models

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyTitle = errors.New("title is required")

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slogan      string    `json:"slogan,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	OwnerID     string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// PostForm carries the multipart fields of a post. Image is optional.
type PostForm struct {
	Title       string
	Description string
	Slogan      string
	Image       *Attachment
}

func (f PostForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
