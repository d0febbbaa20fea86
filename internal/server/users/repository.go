package users

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

// Repository stores accounts. Emails are unique, compared case-insensitively.
type Repository interface {
	Create(ctx context.Context, acc models.Account) error
	Get(ctx context.Context, id string) (models.Account, error)
	GetByEmail(ctx context.Context, email string) (models.Account, error)
	GetByResetDigest(ctx context.Context, digest string) (models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Update(ctx context.Context, id string, fn func(acc *models.Account) error) (models.Account, error)
	Delete(ctx context.Context, id string) error
}
