package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/dmitrijs2005/skillshare/internal/identity"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, form models.UserForm) (models.User, error)
	Update(ctx context.Context, id string, form models.UserForm) (models.User, error)
	Delete(ctx context.Context, id string) error
	Courses(ctx context.Context, userID string) ([]models.Course, error)
	Posts(ctx context.Context, userID string) ([]models.Post, error)
}

type userService struct {
	api   API
	store SessionStore
	auth  AuthService
}

// NewUserService needs auth to end the session when the signed-in user
// deletes their own account.
func NewUserService(api API, store SessionStore, auth AuthService) UserService {
	return &userService{api: api, store: store, auth: auth}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/users"}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id string) (models.User, error) {
	if err := requireID("user", id); err != nil {
		return models.User{}, err
	}
	var u models.User
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: path("/users", id)}, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Create registers an account without signing in as it.
func (s *userService) Create(ctx context.Context, form models.UserForm) (models.User, error) {
	if err := form.ValidateRegistration(); err != nil {
		return models.User{}, invalid("%w", err)
	}
	var resp models.AuthResponse
	err := s.api.Do(ctx, client.Request{
		Method:    http.MethodPost,
		Path:      "/users",
		Multipart: userMultipart(form),
		Public:    true,
	}, &resp)
	if err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// Update sends the edited profile. Empty Username, Location and Bio clear
// the stored values. When the profile is the signed-in user's, the cached
// session user is refreshed too.
func (s *userService) Update(ctx context.Context, id string, form models.UserForm) (models.User, error) {
	if err := requireID("user", id); err != nil {
		return models.User{}, err
	}
	var u models.User
	err := s.api.Do(ctx, client.Request{
		Method:    http.MethodPut,
		Path:      path("/users", id),
		Multipart: profileMultipart(form),
	}, &u)
	if err != nil {
		return models.User{}, err
	}

	if current, ok := s.store.CurrentUser(); ok && identity.SameID(current.ID, u.ID) {
		if err := s.store.UpdateUser(ctx, u); err != nil {
			return u, fmt.Errorf("refresh session user: %w", err)
		}
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := requireID("user", id); err != nil {
		return err
	}
	if err := s.api.Do(ctx, client.Request{Method: http.MethodDelete, Path: path("/users", id)}, nil); err != nil {
		return err
	}
	if current, ok := s.store.CurrentUser(); ok && identity.SameID(current.ID, id) {
		return s.auth.Logout(ctx)
	}
	return nil
}

// Courses lists every course the user authored, unpaged.
func (s *userService) Courses(ctx context.Context, userID string) ([]models.Course, error) {
	if err := requireID("user", userID); err != nil {
		return nil, err
	}
	var courses []models.Course
	q := url.Values{"userId": {userID}}
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/courses", Query: q}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *userService) Posts(ctx context.Context, userID string) ([]models.Post, error) {
	if err := requireID("user", userID); err != nil {
		return nil, err
	}
	var posts []models.Post
	q := url.Values{"userId": {userID}}
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/posts", Query: q}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// profileMultipart always sends the clearable fields so an empty value
// replaces the stored one. Name, email and password stay optional.
func profileMultipart(f models.UserForm) *client.Multipart {
	return client.NewMultipart().
		OptionalField("name", f.Name).
		Field("username", f.Username).
		OptionalField("email", f.Email).
		OptionalField("password", f.Password).
		OptionalInt("age", f.Age).
		Field("location", f.Location).
		Field("bio", f.Bio).
		File("profilePhoto", f.ProfilePhoto).
		File("coverPhoto", f.CoverPhoto)
}

func userMultipart(f models.UserForm) *client.Multipart {
	return client.NewMultipart().
		OptionalField("name", f.Name).
		OptionalField("username", f.Username).
		OptionalField("email", f.Email).
		OptionalField("password", f.Password).
		OptionalInt("age", f.Age).
		OptionalField("location", f.Location).
		OptionalField("bio", f.Bio).
		File("profilePhoto", f.ProfilePhoto).
		File("coverPhoto", f.CoverPhoto)
}
