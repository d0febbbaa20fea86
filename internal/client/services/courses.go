package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

type CourseService interface {
	List(ctx context.Context, page models.PageRequest) ([]models.Course, error)
	ListByOwner(ctx context.Context, ownerID string, page models.PageRequest) ([]models.Course, error)
	Get(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, course models.Course) (models.Course, error)
	Update(ctx context.Context, id string, course models.Course) (models.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	api   API
	store SessionStore
}

func NewCourseService(api API, store SessionStore) CourseService {
	return &courseService{api: api, store: store}
}

func (s *courseService) List(ctx context.Context, page models.PageRequest) ([]models.Course, error) {
	return s.list(ctx, pageQuery(page, nil))
}

func (s *courseService) ListByOwner(ctx context.Context, ownerID string, page models.PageRequest) ([]models.Course, error) {
	if err := requireID("user", ownerID); err != nil {
		return nil, err
	}
	return s.list(ctx, pageQuery(page, url.Values{"userId": {ownerID}}))
}

func (s *courseService) list(ctx context.Context, q url.Values) ([]models.Course, error) {
	var courses []models.Course
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/courses", Query: q}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Get is the one read that retries on connectivity failures.
func (s *courseService) Get(ctx context.Context, id string) (models.Course, error) {
	if err := requireID("course", id); err != nil {
		return models.Course{}, err
	}
	var c models.Course
	err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: path("/courses", id), Retry: true}, &c)
	if err != nil {
		return models.Course{}, err
	}
	return c, nil
}

// Create publishes a course owned by the signed-in user, starting at 0%.
func (s *courseService) Create(ctx context.Context, course models.Course) (models.Course, error) {
	owner, err := currentOwner(s.store)
	if err != nil {
		return models.Course{}, err
	}
	if err := course.Validate(); err != nil {
		return models.Course{}, invalid("%w", err)
	}
	course.ID = ""
	course.OwnerID = owner
	course.Progress = 0

	var created models.Course
	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/courses", Body: course}, &created); err != nil {
		return models.Course{}, err
	}
	return created, nil
}

func (s *courseService) Update(ctx context.Context, id string, course models.Course) (models.Course, error) {
	if err := requireID("course", id); err != nil {
		return models.Course{}, err
	}
	if err := course.Validate(); err != nil {
		return models.Course{}, invalid("%w", err)
	}
	course.ID = id

	var updated models.Course
	if err := s.api.Do(ctx, client.Request{Method: http.MethodPut, Path: path("/courses", id), Body: course}, &updated); err != nil {
		return models.Course{}, err
	}
	return updated, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := requireID("course", id); err != nil {
		return err
	}
	return s.api.Do(ctx, client.Request{Method: http.MethodDelete, Path: path("/courses", id)}, nil)
}
