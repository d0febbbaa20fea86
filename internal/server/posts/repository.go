package posts

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/server/memstore"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p models.Post) error
	Get(ctx context.Context, id string) (models.Post, error)
	List(ctx context.Context, filter func(models.Post) bool) ([]models.Post, error)
	Update(ctx context.Context, id string, fn func(p *models.Post) error) (models.Post, error)
	Delete(ctx context.Context, id string) error
}

type MemoryRepository struct {
	table *memstore.Table[models.Post]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memstore.NewTable[models.Post]()}
}

func (r *MemoryRepository) Create(_ context.Context, p models.Post) error {
	return r.table.Insert(p.ID, p)
}

func (r *MemoryRepository) Get(_ context.Context, id string) (models.Post, error) {
	return r.table.Get(id)
}

func (r *MemoryRepository) List(_ context.Context, filter func(models.Post) bool) ([]models.Post, error) {
	return r.table.List(filter), nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, fn func(p *models.Post) error) (models.Post, error) {
	return r.table.Update(id, fn)
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	return r.table.Delete(id)
}
