package users

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/dmitrijs2005/skillshare/internal/server/pgstore"
)

// PostgresRepository keeps accounts in the "users" document collection.
type PostgresRepository struct {
	docs *pgstore.Collection[models.Account]
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		docs: pgstore.NewCollection(db, "users", func(a models.Account) string { return a.ID }),
	}
}

func sameEmail(a, b models.Account) bool {
	return normalizeEmail(a.Email) == normalizeEmail(b.Email)
}

func (r *PostgresRepository) Create(ctx context.Context, acc models.Account) error {
	return r.docs.CreateUnique(ctx, acc, func(existing models.Account) bool { return sameEmail(existing, acc) })
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (models.Account, error) {
	return r.docs.Get(ctx, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	email = normalizeEmail(email)
	return r.docs.Find(ctx, func(a models.Account) bool { return normalizeEmail(a.Email) == email })
}

func (r *PostgresRepository) GetByResetDigest(ctx context.Context, digest string) (models.Account, error) {
	if digest == "" {
		return models.Account{}, common.ErrNotFound
	}
	return r.docs.Find(ctx, func(a models.Account) bool { return a.ResetDigest == digest })
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Account, error) {
	return r.docs.List(ctx, nil)
}

// Update rejects a change to an email another account already uses.
func (r *PostgresRepository) Update(ctx context.Context, id string, fn func(acc *models.Account) error) (models.Account, error) {
	return r.docs.UpdateUnique(ctx, id, fn, sameEmail)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}
