// Package session keeps the signed-in user's access token and profile, in
// memory and in the local SQLite database.
//
// The token and the user always travel together: Commit writes both in one
// transaction, Clear removes both, and Restore either loads a valid pair or
// discards whatever it found. Every commit or clear bumps a generation
// counter so that a request rejected with 401 can clear exactly the session
// it was sent with (see Invalidate).
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/dmitrijs2005/skillshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/skillshare/internal/dbx"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

var (
	ErrMissingToken = errors.New("session token is empty")
	ErrUserMismatch = errors.New("user does not belong to the current session")
	ErrAnonymous    = errors.New("no active session")
)

// Session is a point-in-time copy of the store. User is nil when anonymous.
type Session struct {
	Token string
	User  *models.User
}

// Store is safe for concurrent use.
type Store struct {
	db     *sql.DB
	repo   metadata.Repository
	logger logging.Logger
	now    func() time.Time

	mu         sync.RWMutex
	token      string
	user       *models.User
	generation uint64
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Store{
		db:     db,
		repo:   metadata.NewSQLiteRepository(db),
		logger: logger,
		now:    time.Now,
	}
}

// Restore loads a previously committed session. Incomplete, malformed or
// expired data is discarded and the store stays anonymous; only storage
// failures are returned.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.repo.Get(ctx, tokenKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	rawUser, err := s.repo.Get(ctx, userKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if len(token) == 0 && len(rawUser) == 0 {
		s.reset()
		return nil
	}

	user, reason := s.validateStored(string(token), rawUser)
	if reason != "" {
		s.logger.Warn(ctx, "discarding stored session", "reason", reason)
		s.reset()
		return s.repo.Delete(ctx, tokenKey, userKey)
	}

	s.token = string(token)
	s.user = user
	s.generation++
	s.logger.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

func (s *Store) validateStored(token string, rawUser []byte) (*models.User, string) {
	if token == "" {
		return nil, "token missing"
	}
	if len(rawUser) == 0 {
		return nil, "user missing"
	}
	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return nil, "user record is not valid json"
	}
	if err := user.Validate(); err != nil {
		return nil, err.Error()
	}
	if s.tokenExpired(token) {
		return nil, "token expired"
	}
	return &user, ""
}

// tokenExpired reports true only for a well-formed JWT whose exp is in the
// past. Opaque tokens are left for the server to judge.
func (s *Store) tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now())
}

// Commit replaces the session with token and user, persisting both in one
// transaction. Nothing changes when validation or the write fails.
func (s *Store) Commit(ctx context.Context, token string, user models.User) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, token, user); err != nil {
		return err
	}
	s.token = token
	s.user = &user
	s.generation++
	return nil
}

// UpdateUser refreshes the cached profile of the signed-in user and keeps
// the token.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrAnonymous
	}
	if s.user.ID != user.ID {
		return ErrUserMismatch
	}
	if err := s.persist(ctx, s.token, user); err != nil {
		return err
	}
	s.user = &user
	return nil
}

func (s *Store) persist(ctx context.Context, token string, user models.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithDB(tx)
		if err := repo.Set(ctx, tokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, userKey, rawUser)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear ends the session. Memory is cleared even if the stored copy cannot
// be removed; that failure is returned.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// Invalidate clears the session if it is still at generation and reports
// whether this call did so. Callers racing on the same generation get true
// exactly once.
func (s *Store) Invalidate(ctx context.Context, generation uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" || s.generation != generation {
		return false, nil
	}
	return true, s.clearLocked(ctx)
}

func (s *Store) clearLocked(ctx context.Context) error {
	s.reset()
	if err := s.repo.Delete(ctx, tokenKey, userKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) reset() {
	s.token = ""
	s.user = nil
	s.generation++
}

// Credentials returns the token and the generation it belongs to.
func (s *Store) Credentials() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.generation
}

// CurrentUser returns a copy of the signed-in user.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return Session{}
	}
	u := *s.user
	return Session{Token: s.token, User: &u}
}
