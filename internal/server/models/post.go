package models

import "time"

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

// Reaction is a like or a dislike.
type Reaction int

const (
	Like Reaction = iota
	Dislike
)
