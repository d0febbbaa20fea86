// Package enrollments tracks which users take which courses and how far
// they got.
package enrollments

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/identity"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

// CourseLookup resolves the course an enrollment refers to.
type CourseLookup interface {
	Get(ctx context.Context, id string) (models.Course, error)
}

type Service struct {
	repo    Repository
	courses CourseLookup
	logger  logging.Logger
}

func NewService(repo Repository, courses CourseLookup, logger logging.Logger) *Service {
	return &Service{repo: repo, courses: courses, logger: logger}
}

// Enroll signs the actor up for a course. An unknown course yields
// common.ErrNotFound, a second enrollment common.ErrAlreadyExists.
func (s *Service) Enroll(ctx context.Context, actorID, courseID string) (models.Enrollment, error) {
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return models.Enrollment{}, err
	}

	id, err := common.NewObjectID()
	if err != nil {
		return models.Enrollment{}, err
	}
	e := models.Enrollment{
		ID:                 id,
		UserID:             actorID,
		CourseID:           course.ID,
		CompletedLessonIDs: []string{},
	}
	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return models.Enrollment{}, fmt.Errorf("already enrolled: %w", err)
		}
		return models.Enrollment{}, err
	}
	s.logger.Info(ctx, "user enrolled", "user_id", actorID, "course_id", course.ID)
	return e, nil
}

// Mine lists the actor's enrollments with progress measured against each
// course as it is now, so lessons added or removed since the last toggle
// are accounted for.
func (s *Service) Mine(ctx context.Context, actorID string) ([]models.Enrollment, error) {
	list, err := s.repo.ListByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		course, err := s.courses.Get(ctx, list[i].CourseID)
		if errors.Is(err, common.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		list[i].Progress = progress(list[i].CompletedLessonIDs, course.LessonIDs())
	}
	return list, nil
}

// progress counts the completed lessons that still belong to the course.
func progress(completed, lessons []string) int {
	done := 0
	for _, id := range lessons {
		if slices.ContainsFunc(completed, func(c string) bool { return identity.SameID(c, id) }) {
			done++
		}
	}
	return models.Progress(done, len(lessons))
}

func (s *Service) IsEnrolled(ctx context.Context, actorID, courseID string) (bool, error) {
	_, err := s.repo.Find(ctx, actorID, courseID)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Toggle flips a lesson between completed and not completed and
// recomputes progress against the course's current lessons.
func (s *Service) Toggle(ctx context.Context, actorID, courseID, lessonID string) (models.Enrollment, error) {
	e, err := s.repo.Find(ctx, actorID, courseID)
	if err != nil {
		return models.Enrollment{}, err
	}
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return models.Enrollment{}, err
	}

	lessons := course.LessonIDs()
	idx := slices.IndexFunc(lessons, func(id string) bool { return identity.SameID(id, lessonID) })
	if idx < 0 {
		return models.Enrollment{}, common.Invalidf("lesson %s is not part of the course", lessonID)
	}
	lesson := lessons[idx]

	return s.repo.Update(ctx, e.ID, func(e *models.Enrollment) error {
		if i := slices.IndexFunc(e.CompletedLessonIDs, func(id string) bool { return identity.SameID(id, lesson) }); i >= 0 {
			e.CompletedLessonIDs = slices.Delete(e.CompletedLessonIDs, i, i+1)
		} else {
			e.CompletedLessonIDs = append(e.CompletedLessonIDs, lesson)
		}
		e.Progress = progress(e.CompletedLessonIDs, lessons)
		return nil
	})
}

func (s *Service) Unenroll(ctx context.Context, actorID, courseID string) error {
	e, err := s.repo.Find(ctx, actorID, courseID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, e.ID); err != nil {
		return err
	}
	s.logger.Info(ctx, "user unenrolled", "user_id", actorID, "course_id", courseID)
	return nil
}

// DeleteByCourse drops every enrollment in a removed course.
func (s *Service) DeleteByCourse(ctx context.Context, courseID string) (int, error) {
	return s.repo.DeleteByCourse(ctx, courseID)
}
