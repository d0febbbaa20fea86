package comments

import (
	"database/sql"

	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/dmitrijs2005/skillshare/internal/server/pgstore"
)

// NewPostgresRepository stores comments in the "comments" document collection.
func NewPostgresRepository(db *sql.DB) Repository {
	return pgstore.NewCollection(db, "comments", func(c models.Comment) string { return c.ID })
}
