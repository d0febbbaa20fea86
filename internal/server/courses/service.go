// Package courses serves the course catalogue. A course holds modules and
// each module holds lessons; the server assigns ids to both.
package courses

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/identity"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server/memstore"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

type Service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns courses in creation order, optionally only those of ownerID.
func (s *Service) List(ctx context.Context, ownerID string, page, size int) ([]models.Course, error) {
	var filter func(models.Course) bool
	if strings.TrimSpace(ownerID) != "" {
		filter = func(c models.Course) bool { return identity.SameID(c.OwnerID, ownerID) }
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return memstore.Page(items, page, size), nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Course, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a course owned by the actor. Client-sent ids and progress
// are ignored.
func (s *Service) Create(ctx context.Context, actorID string, c models.Course) (models.Course, error) {
	if err := validate(c); err != nil {
		return models.Course{}, err
	}

	id, err := common.NewObjectID()
	if err != nil {
		return models.Course{}, err
	}
	c.ID = id
	c.OwnerID = actorID
	c.Progress = 0
	if err := assignIDs(c.Modules, nil); err != nil {
		return models.Course{}, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return models.Course{}, err
	}
	s.logger.Info(ctx, "course created", "course_id", id, "user_id", actorID, "lessons", len(c.LessonIDs()))
	return c, nil
}

// Update replaces an owned course's content. Lesson and module ids already
// known to the course are kept so enrollments stay valid.
func (s *Service) Update(ctx context.Context, actorID, id string, in models.Course) (models.Course, error) {
	if err := validate(in); err != nil {
		return models.Course{}, err
	}
	return s.repo.Update(ctx, id, func(c *models.Course) error {
		if !identity.CanModify(actorID, c.OwnerID) {
			return common.ErrForbidden
		}
		known := knownIDs(*c)
		if err := assignIDs(in.Modules, known); err != nil {
			return err
		}
		c.Name = in.Name
		c.Level = in.Level
		c.Institute = in.Institute
		c.Type = in.Type
		c.Duration = in.Duration
		c.StartDate = in.StartDate
		c.ThumbnailURL = in.ThumbnailURL
		c.Modules = in.Modules
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !identity.CanModify(actorID, c.OwnerID) {
		return common.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "course deleted", "course_id", id, "user_id", actorID)
	return nil
}

func validate(c models.Course) error {
	var problems []string
	for field, v := range map[string]string{
		"courseName":  c.Name,
		"courseLevel": c.Level,
		"institute":   c.Institute,
		"courseType":  c.Type,
	} {
		if strings.TrimSpace(v) == "" {
			problems = append(problems, field+" is required")
		}
	}
	if c.Duration < 0 {
		problems = append(problems, "duration must not be negative")
	}
	if c.StartDate != "" {
		if _, err := time.Parse(time.DateOnly, c.StartDate); err != nil {
			problems = append(problems, "startDate must be YYYY-MM-DD")
		}
	}
	if len(c.Modules) == 0 {
		problems = append(problems, "a course needs at least one module")
	}
	for i, m := range c.Modules {
		if strings.TrimSpace(m.Title) == "" {
			problems = append(problems, fmt.Sprintf("module %d has no title", i+1))
		}
		for j, l := range m.Lessons {
			if strings.TrimSpace(l.Title) == "" {
				problems = append(problems, fmt.Sprintf("lesson %d.%d has no title", i+1, j+1))
			}
		}
	}
	if len(problems) > 0 {
		slices.Sort(problems)
		return common.Invalidf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// knownIDs collects the normalized module and lesson ids of c.
func knownIDs(c models.Course) map[string]bool {
	known := make(map[string]bool)
	for _, m := range c.Modules {
		known[identity.Normalize(m.ID)] = true
		for _, l := range m.Lessons {
			known[identity.Normalize(l.ID)] = true
		}
	}
	return known
}

// assignIDs gives a fresh id to every module and lesson whose id is empty,
// not in keep, or repeated within the course.
func assignIDs(modules []models.Module, keep map[string]bool) error {
	seen := make(map[string]bool)
	fresh := func(id *string) error {
		key := identity.Normalize(*id)
		if key != "" && keep[key] && !seen[key] {
			seen[key] = true
			return nil
		}
		newID, err := common.NewObjectID()
		if err != nil {
			return err
		}
		*id = newID
		seen[newID] = true
		return nil
	}

	for i := range modules {
		if err := fresh(&modules[i].ID); err != nil {
			return err
		}
		if modules[i].Lessons == nil {
			modules[i].Lessons = []models.Lesson{}
		}
		for j := range modules[i].Lessons {
			if err := fresh(&modules[i].Lessons[j].ID); err != nil {
				return err
			}
		}
	}
	return nil
}
