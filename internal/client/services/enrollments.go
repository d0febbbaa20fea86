package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, courseID string) (models.Enrollment, error)
	Mine(ctx context.Context) ([]models.Enrollment, error)
	IsEnrolled(ctx context.Context, courseID string) (bool, error)
	ToggleLesson(ctx context.Context, courseID, lessonID string) (models.Enrollment, error)
	Unenroll(ctx context.Context, courseID string) error
}

type enrollmentService struct {
	api API
}

func NewEnrollmentService(api API) EnrollmentService {
	return &enrollmentService{api: api}
}

func (s *enrollmentService) Enroll(ctx context.Context, courseID string) (models.Enrollment, error) {
	if err := requireID("course", courseID); err != nil {
		return models.Enrollment{}, err
	}
	var e models.Enrollment
	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: path("/enrollments", courseID)}, &e); err != nil {
		return models.Enrollment{}, err
	}
	return e, nil
}

func (s *enrollmentService) Mine(ctx context.Context) ([]models.Enrollment, error) {
	var list []models.Enrollment
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/enrollments/user"}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// IsEnrolled treats 404 as "not enrolled"; every other failure is returned.
func (s *enrollmentService) IsEnrolled(ctx context.Context, courseID string) (bool, error) {
	if err := requireID("course", courseID); err != nil {
		return false, err
	}
	var enrolled bool
	err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: path("/enrollments", courseID, "status")}, &enrolled)
	if errors.Is(err, client.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return enrolled, nil
}

// ToggleLesson flips a lesson's completion. The returned enrollment carries
// the progress the server computed.
func (s *enrollmentService) ToggleLesson(ctx context.Context, courseID, lessonID string) (models.Enrollment, error) {
	if err := requireID("course", courseID); err != nil {
		return models.Enrollment{}, err
	}
	if err := requireID("lesson", lessonID); err != nil {
		return models.Enrollment{}, err
	}
	var e models.Enrollment
	err := s.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   path("/enrollments", courseID, "lessons", lessonID, "toggle"),
	}, &e)
	if err != nil {
		return models.Enrollment{}, err
	}
	return e, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, courseID string) error {
	if err := requireID("course", courseID); err != nil {
		return err
	}
	return s.api.Do(ctx, client.Request{Method: http.MethodDelete, Path: path("/enrollments", courseID)}, nil)
}
