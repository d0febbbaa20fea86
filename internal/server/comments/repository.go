package comments

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/server/memstore"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c models.Comment) error
	Get(ctx context.Context, id string) (models.Comment, error)
	List(ctx context.Context, filter func(models.Comment) bool) ([]models.Comment, error)
	Update(ctx context.Context, id string, fn func(c *models.Comment) error) (models.Comment, error)
	DeleteWhere(ctx context.Context, filter func(models.Comment) bool) (int, error)
}

type MemoryRepository struct {
	table *memstore.Table[models.Comment]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memstore.NewTable[models.Comment]()}
}

func (r *MemoryRepository) Create(_ context.Context, c models.Comment) error {
	return r.table.Insert(c.ID, c)
}

func (r *MemoryRepository) Get(_ context.Context, id string) (models.Comment, error) {
	return r.table.Get(id)
}

func (r *MemoryRepository) List(_ context.Context, filter func(models.Comment) bool) ([]models.Comment, error) {
	return r.table.List(filter), nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, fn func(c *models.Comment) error) (models.Comment, error) {
	return r.table.Update(id, fn)
}

func (r *MemoryRepository) DeleteWhere(_ context.Context, filter func(models.Comment) bool) (int, error) {
	return r.table.DeleteWhere(filter), nil
}
