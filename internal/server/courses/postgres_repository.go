package courses

import (
	"database/sql"

	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/dmitrijs2005/skillshare/internal/server/pgstore"
)

// NewPostgresRepository stores courses in the "courses" document collection.
func NewPostgresRepository(db *sql.DB) Repository {
	return pgstore.NewCollection(db, "courses", func(c models.Course) string { return c.ID })
}
