package models

import (
	"encoding/base64"
	"time"
)

// User is the public profile returned by the API.
type User struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Username           string   `json:"username,omitempty"`
	Email              string   `json:"email"`
	Age                int      `json:"age,omitempty"`
	Location           string   `json:"location,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	AvatarURL          string   `json:"avatarUrl,omitempty"`
	ProfilePhotoBase64 string   `json:"profilePhotoBase64,omitempty"`
	CoverPhotoBase64   string   `json:"coverPhotoBase64,omitempty"`
	Roles              []string `json:"roles,omitempty"`
}

// Account is the stored form of a user: the profile plus credentials.
type Account struct {
	User
	PasswordHash []byte
	ResetDigest  string
	ResetExpires time.Time
	CreatedAt    time.Time
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Image is an uploaded file as received in a multipart form.
type Image struct {
	FileName    string
	ContentType string
	Data        []byte
}

// DataURL inlines the image as a data: URL, or returns "" for no image.
func (img *Image) DataURL() string {
	if img == nil || len(img.Data) == 0 {
		return ""
	}
	ct := img.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
