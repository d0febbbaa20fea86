package models

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyComment = errors.New("comment content is required")

type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	Content    string    `json:"content"`
	Likes      int       `json:"likes"`
	Dislikes   int       `json:"dislikes"`
	Reply      bool      `json:"reply"`
	ReplyTo    string    `json:"replyTo,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
	UpdatedAt  time.Time `json:"updatedAt,omitzero"`
}

// CommentInput is the body for creating a comment or a reply.
type CommentInput struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

func (c CommentInput) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return ErrEmptyComment
	}
	return nil
}
