package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

type PostService interface {
	List(ctx context.Context, page models.PageRequest) ([]models.Post, error)
	ListByOwner(ctx context.Context, ownerID string, page models.PageRequest) ([]models.Post, error)
	Get(ctx context.Context, id string) (models.Post, error)
	Create(ctx context.Context, form models.PostForm) (models.Post, error)
	Update(ctx context.Context, id string, form models.PostForm) (models.Post, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (models.Post, error)
	Dislike(ctx context.Context, id string) (models.Post, error)
}

type postService struct {
	api   API
	store SessionStore
}

func NewPostService(api API, store SessionStore) PostService {
	return &postService{api: api, store: store}
}

func (s *postService) List(ctx context.Context, page models.PageRequest) ([]models.Post, error) {
	return s.list(ctx, pageQuery(page, nil))
}

func (s *postService) ListByOwner(ctx context.Context, ownerID string, page models.PageRequest) ([]models.Post, error) {
	if err := requireID("user", ownerID); err != nil {
		return nil, err
	}
	return s.list(ctx, pageQuery(page, url.Values{"userId": {ownerID}}))
}

func (s *postService) list(ctx context.Context, q url.Values) ([]models.Post, error) {
	var posts []models.Post
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/posts", Query: q}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id string) (models.Post, error) {
	if err := requireID("post", id); err != nil {
		return models.Post{}, err
	}
	var p models.Post
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: path("/posts", id)}, &p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Create publishes a post owned by the signed-in user.
func (s *postService) Create(ctx context.Context, form models.PostForm) (models.Post, error) {
	if err := form.Validate(); err != nil {
		return models.Post{}, invalid("%w", err)
	}
	owner, err := currentOwner(s.store)
	if err != nil {
		return models.Post{}, err
	}

	var p models.Post
	err = s.api.Do(ctx, client.Request{
		Method:    http.MethodPost,
		Path:      "/posts",
		Multipart: postMultipart(form).Field("userId", owner),
	}, &p)
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (s *postService) Update(ctx context.Context, id string, form models.PostForm) (models.Post, error) {
	if err := requireID("post", id); err != nil {
		return models.Post{}, err
	}
	if err := form.Validate(); err != nil {
		return models.Post{}, invalid("%w", err)
	}

	var p models.Post
	err := s.api.Do(ctx, client.Request{
		Method:    http.MethodPut,
		Path:      path("/posts", id),
		Multipart: postMultipart(form),
	}, &p)
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if err := requireID("post", id); err != nil {
		return err
	}
	return s.api.Do(ctx, client.Request{Method: http.MethodDelete, Path: path("/posts", id)}, nil)
}

func (s *postService) Like(ctx context.Context, id string) (models.Post, error) {
	return s.react(ctx, id, "like")
}

func (s *postService) Dislike(ctx context.Context, id string) (models.Post, error) {
	return s.react(ctx, id, "dislike")
}

func (s *postService) react(ctx context.Context, id, reaction string) (models.Post, error) {
	if err := requireID("post", id); err != nil {
		return models.Post{}, err
	}
	var p models.Post
	if err := s.api.Do(ctx, client.Request{Method: http.MethodPut, Path: path("/posts", id, reaction)}, &p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func postMultipart(f models.PostForm) *client.Multipart {
	return client.NewMultipart().
		Field("title", f.Title).
		Field("description", f.Description).
		Field("slogan", f.Slogan).
		File("image", f.Image)
}
