package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

type CommentService interface {
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	Get(ctx context.Context, id string) (models.Comment, error)
	Replies(ctx context.Context, id string) ([]models.Comment, error)
	Create(ctx context.Context, postID, content string) (models.Comment, error)
	Reply(ctx context.Context, id, content string) (models.Comment, error)
	Update(ctx context.Context, id, content string) (models.Comment, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (models.Comment, error)
	Dislike(ctx context.Context, id string) (models.Comment, error)
}

type commentService struct {
	api API
}

func NewCommentService(api API) CommentService {
	return &commentService{api: api}
}

func (s *commentService) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	if err := requireID("post", postID); err != nil {
		return nil, err
	}
	return s.list(ctx, path("/comments/post", postID))
}

func (s *commentService) Replies(ctx context.Context, id string) ([]models.Comment, error) {
	if err := requireID("comment", id); err != nil {
		return nil, err
	}
	return s.list(ctx, path("/comments", id, "replies"))
}

func (s *commentService) list(ctx context.Context, p string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: p}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *commentService) Get(ctx context.Context, id string) (models.Comment, error) {
	if err := requireID("comment", id); err != nil {
		return models.Comment{}, err
	}
	return s.send(ctx, http.MethodGet, path("/comments", id), nil)
}

func (s *commentService) Create(ctx context.Context, postID, content string) (models.Comment, error) {
	if err := requireID("post", postID); err != nil {
		return models.Comment{}, err
	}
	in := models.CommentInput{PostID: postID, Content: content}
	if err := in.Validate(); err != nil {
		return models.Comment{}, invalid("%w", err)
	}
	return s.send(ctx, http.MethodPost, "/comments", in)
}

func (s *commentService) Reply(ctx context.Context, id, content string) (models.Comment, error) {
	if err := requireID("comment", id); err != nil {
		return models.Comment{}, err
	}
	in := models.CommentInput{Content: content}
	if err := in.Validate(); err != nil {
		return models.Comment{}, invalid("%w", err)
	}
	return s.send(ctx, http.MethodPost, path("/comments", id, "reply"), in)
}

func (s *commentService) Update(ctx context.Context, id, content string) (models.Comment, error) {
	if err := requireID("comment", id); err != nil {
		return models.Comment{}, err
	}
	in := models.CommentInput{Content: content}
	if err := in.Validate(); err != nil {
		return models.Comment{}, invalid("%w", err)
	}
	return s.send(ctx, http.MethodPut, path("/comments", id), in)
}

func (s *commentService) Delete(ctx context.Context, id string) error {
	if err := requireID("comment", id); err != nil {
		return err
	}
	return s.api.Do(ctx, client.Request{Method: http.MethodDelete, Path: path("/comments", id)}, nil)
}

func (s *commentService) Like(ctx context.Context, id string) (models.Comment, error) {
	if err := requireID("comment", id); err != nil {
		return models.Comment{}, err
	}
	return s.send(ctx, http.MethodPut, path("/comments", id, "like"), nil)
}

func (s *commentService) Dislike(ctx context.Context, id string) (models.Comment, error) {
	if err := requireID("comment", id); err != nil {
		return models.Comment{}, err
	}
	return s.send(ctx, http.MethodPut, path("/comments", id, "dislike"), nil)
}

func (s *commentService) send(ctx context.Context, method, p string, body any) (models.Comment, error) {
	var c models.Comment
	if err := s.api.Do(ctx, client.Request{Method: method, Path: p, Body: body}, &c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}
