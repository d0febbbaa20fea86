package users

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/identity"
	"github.com/dmitrijs2005/skillshare/internal/server/memstore"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
)

type MemoryRepository struct {
	// emailMu serializes writes that may set an email.
	emailMu sync.Mutex
	table   *memstore.Table[models.Account]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memstore.NewTable[models.Account]()}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryRepository) Create(_ context.Context, acc models.Account) error {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()

	email := normalizeEmail(acc.Email)
	return r.table.InsertUnique(acc.ID, acc, func(existing models.Account) bool {
		return normalizeEmail(existing.Email) == email
	})
}

func (r *MemoryRepository) Get(_ context.Context, id string) (models.Account, error) {
	return r.table.Get(id)
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (models.Account, error) {
	email = normalizeEmail(email)
	acc, ok := r.table.Find(func(a models.Account) bool { return normalizeEmail(a.Email) == email })
	if !ok {
		return models.Account{}, common.ErrNotFound
	}
	return acc, nil
}

func (r *MemoryRepository) GetByResetDigest(_ context.Context, digest string) (models.Account, error) {
	if digest == "" {
		return models.Account{}, common.ErrNotFound
	}
	acc, ok := r.table.Find(func(a models.Account) bool { return a.ResetDigest == digest })
	if !ok {
		return models.Account{}, common.ErrNotFound
	}
	return acc, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Account, error) {
	return r.table.List(nil), nil
}

// Update rejects a change to an email another account already uses.
func (r *MemoryRepository) Update(ctx context.Context, id string, fn func(acc *models.Account) error) (models.Account, error) {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()

	current, err := r.table.Get(id)
	if err != nil {
		return models.Account{}, err
	}
	next := current
	if err := fn(&next); err != nil {
		return models.Account{}, err
	}
	if email := normalizeEmail(next.Email); email != normalizeEmail(current.Email) {
		other, err := r.GetByEmail(ctx, email)
		if err == nil && !identity.SameID(other.ID, current.ID) {
			return models.Account{}, common.ErrAlreadyExists
		}
	}

	return r.table.Update(id, func(acc *models.Account) error {
		*acc = next
		return nil
	})
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	return r.table.Delete(id)
}
