package courses

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/server/memstore"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c models.Course) error
	Get(ctx context.Context, id string) (models.Course, error)
	List(ctx context.Context, filter func(models.Course) bool) ([]models.Course, error)
	Update(ctx context.Context, id string, fn func(c *models.Course) error) (models.Course, error)
	Delete(ctx context.Context, id string) error
}

type MemoryRepository struct {
	table *memstore.Table[models.Course]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memstore.NewTable[models.Course]()}
}

func (r *MemoryRepository) Create(_ context.Context, c models.Course) error {
	return r.table.Insert(c.ID, c)
}

func (r *MemoryRepository) Get(_ context.Context, id string) (models.Course, error) {
	return r.table.Get(id)
}

func (r *MemoryRepository) List(_ context.Context, filter func(models.Course) bool) ([]models.Course, error) {
	return r.table.List(filter), nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, fn func(c *models.Course) error) (models.Course, error) {
	return r.table.Update(id, fn)
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	return r.table.Delete(id)
}
