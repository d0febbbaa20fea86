package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/identity"
)

var ErrInvalidUserID = errors.New("user id is not a valid object id")

// User is the public profile of an account. ID is the canonical identifier;
// Email is for display and login only.
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

// Validate checks the fields a session depends on.
func (u User) Validate() error {
	if !identity.IsValidID(u.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, u.ID)
	}
	return nil
}

// DisplayName prefers the full name, then the username, then the email.
func (u User) DisplayName() string {
	for _, s := range []string{u.Name, u.Username, u.Email} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return u.ID
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Attachment is an image sent as a multipart file part.
type Attachment struct {
	FileName string
	Data     []byte
}

// UserForm is registration or profile-edit input. On update, Username,
// Location and Bio replace the stored values even when empty.
type UserForm struct {
	Name         string
	Username     string
	Email        string
	Password     string
	Age          int
	Location     string
	Bio          string
	ProfilePhoto *Attachment
	CoverPhoto   *Attachment
}

// ValidateRegistration checks the fields required to create an account.
func (f UserForm) ValidateRegistration() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if !strings.Contains(f.Email, "@") {
		missing = append(missing, "email")
	}
	if len(f.Password) < 6 {
		missing = append(missing, "password (min 6 characters)")
	}
	if f.Age < 0 {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid registration: %s", strings.Join(missing, ", "))
	}
	return nil
}
