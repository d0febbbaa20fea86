package posts

import (
	"database/sql"

	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/dmitrijs2005/skillshare/internal/server/pgstore"
)

// NewPostgresRepository stores posts in the "posts" document collection.
func NewPostgresRepository(db *sql.DB) Repository {
	return pgstore.NewCollection(db, "posts", func(p models.Post) string { return p.ID })
}
