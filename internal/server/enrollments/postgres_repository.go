package enrollments

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/skillshare/internal/identity"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/dmitrijs2005/skillshare/internal/server/pgstore"
)

// PostgresRepository keeps enrollments in the "enrollments" document
// collection.
type PostgresRepository struct {
	docs *pgstore.Collection[models.Enrollment]
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		docs: pgstore.NewCollection(db, "enrollments", func(e models.Enrollment) string { return e.ID }),
	}
}

func (r *PostgresRepository) Create(ctx context.Context, e models.Enrollment) error {
	return r.docs.CreateUnique(ctx, e, matches(e.UserID, e.CourseID))
}

func (r *PostgresRepository) Find(ctx context.Context, userID, courseID string) (models.Enrollment, error) {
	return r.docs.Find(ctx, matches(userID, courseID))
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	return r.docs.List(ctx, func(e models.Enrollment) bool { return identity.SameID(e.UserID, userID) })
}

func (r *PostgresRepository) Update(ctx context.Context, id string, fn func(e *models.Enrollment) error) (models.Enrollment, error) {
	return r.docs.Update(ctx, id, fn)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}

func (r *PostgresRepository) DeleteByCourse(ctx context.Context, courseID string) (int, error) {
	return r.docs.DeleteWhere(ctx, func(e models.Enrollment) bool { return identity.SameID(e.CourseID, courseID) })
}
