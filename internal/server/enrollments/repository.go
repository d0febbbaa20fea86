package enrollments

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/identity"
	"github.com/dmitrijs2005/skillshare/internal/server/memstore"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

// Repository stores enrollments. A user holds at most one enrollment per
// course.
type Repository interface {
	Create(ctx context.Context, e models.Enrollment) error
	Find(ctx context.Context, userID, courseID string) (models.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error)
	Update(ctx context.Context, id string, fn func(e *models.Enrollment) error) (models.Enrollment, error)
	Delete(ctx context.Context, id string) error
	DeleteByCourse(ctx context.Context, courseID string) (int, error)
}

type MemoryRepository struct {
	table *memstore.Table[models.Enrollment]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memstore.NewTable[models.Enrollment]()}
}

func matches(userID, courseID string) func(models.Enrollment) bool {
	return func(e models.Enrollment) bool {
		return identity.SameID(e.UserID, userID) && identity.SameID(e.CourseID, courseID)
	}
}

func (r *MemoryRepository) Create(_ context.Context, e models.Enrollment) error {
	return r.table.InsertUnique(e.ID, e, matches(e.UserID, e.CourseID))
}

func (r *MemoryRepository) Find(_ context.Context, userID, courseID string) (models.Enrollment, error) {
	e, ok := r.table.Find(matches(userID, courseID))
	if !ok {
		return models.Enrollment{}, common.ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]models.Enrollment, error) {
	return r.table.List(func(e models.Enrollment) bool { return identity.SameID(e.UserID, userID) }), nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, fn func(e *models.Enrollment) error) (models.Enrollment, error) {
	return r.table.Update(id, fn)
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	return r.table.Delete(id)
}

func (r *MemoryRepository) DeleteByCourse(_ context.Context, courseID string) (int, error) {
	return r.table.DeleteWhere(func(e models.Enrollment) bool { return identity.SameID(e.CourseID, courseID) }), nil
}
