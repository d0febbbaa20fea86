package session

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "65f1a2b3c4d5e6f708091a2b"

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func putMeta(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?)`, key, []byte(value))
	require.NoError(t, err)
}

func countMeta(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func sampleUser() models.User {
	return models.User{ID: userID, Name: "Ann", Email: "ann@example.com"}
}

func TestCommitThenRestore(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	s := NewStore(db, nil)
	require.NoError(t, s.Commit(ctx, "opaque-token", sampleUser()))
	assert.True(t, s.IsAuthenticated())

	restored := NewStore(db, nil)
	require.NoError(t, restored.Restore(ctx))

	snap := restored.Snapshot()
	assert.Equal(t, "opaque-token", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, sampleUser(), *snap.User)
}

func TestCommit_RejectsInvalidInputWithoutWriting(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	s := NewStore(db, nil)

	err := s.Commit(ctx, "tok", models.User{ID: "ann@example.com"})
	require.ErrorIs(t, err, models.ErrInvalidUserID)

	err = s.Commit(ctx, "  ", sampleUser())
	require.ErrorIs(t, err, ErrMissingToken)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 0, countMeta(t, db))
}

func TestRestore_DiscardsIncompleteOrInvalidData(t *testing.T) {
	tests := []struct {
		name string
		seed map[string]string
	}{
		{name: "token without user", seed: map[string]string{"token": "t"}},
		{name: "user without token", seed: map[string]string{"user": `{"id":"` + userID + `"}`}},
		{name: "malformed user json", seed: map[string]string{"token": "t", "user": `{"id":`}},
		{name: "email used as id", seed: map[string]string{"token": "t", "user": `{"id":"ann@example.com"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			for k, v := range tt.seed {
				putMeta(t, db, k, v)
			}

			s := NewStore(db, nil)
			require.NoError(t, s.Restore(context.Background()))

			snap := s.Snapshot()
			assert.Empty(t, snap.Token)
			assert.Nil(t, snap.User)
			assert.Equal(t, 0, countMeta(t, db), "stale data must be removed")
		})
	}
}

func TestRestore_TokenExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("expired jwt is discarded", func(t *testing.T) {
		db := setupDB(t)
		putMeta(t, db, "token", signedToken(t, time.Now().Add(-time.Minute)))
		putMeta(t, db, "user", `{"id":"`+userID+`"}`)

		s := NewStore(db, nil)
		require.NoError(t, s.Restore(ctx))
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("live jwt is kept", func(t *testing.T) {
		db := setupDB(t)
		tok := signedToken(t, time.Now().Add(time.Hour))
		putMeta(t, db, "token", tok)
		putMeta(t, db, "user", `{"id":"`+userID+`"}`)

		s := NewStore(db, nil)
		require.NoError(t, s.Restore(ctx))
		got, _ := s.Credentials()
		assert.Equal(t, tok, got)
	})
}

func TestRestore_EmptyStorage(t *testing.T) {
	s := NewStore(setupDB(t), nil)
	require.NoError(t, s.Restore(context.Background()))
	_, ok := s.CurrentUser()
	assert.False(t, ok)
}

func TestClear_RemovesBoth(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	s := NewStore(db, nil)
	require.NoError(t, s.Commit(ctx, "tok", sampleUser()))

	require.NoError(t, s.Clear(ctx))

	assert.False(t, s.IsAuthenticated())
	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, 0, countMeta(t, db))
}

func TestInvalidate_OnlyOnceForAGeneration(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil)
	require.NoError(t, s.Commit(ctx, "tok", sampleUser()))
	_, gen := s.Credentials()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cleared, err := s.Invalidate(ctx, gen)
			assert.NoError(t, err)
			if cleared {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.False(t, s.IsAuthenticated())
}

func TestInvalidate_StaleGenerationKeepsNewSession(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil)
	require.NoError(t, s.Commit(ctx, "old", sampleUser()))
	_, oldGen := s.Credentials()

	require.NoError(t, s.Commit(ctx, "new", sampleUser()))

	cleared, err := s.Invalidate(ctx, oldGen)
	require.NoError(t, err)
	assert.False(t, cleared)

	tok, _ := s.Credentials()
	assert.Equal(t, "new", tok)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewStore(db, nil)

	require.ErrorIs(t, s.UpdateUser(ctx, sampleUser()), ErrAnonymous)

	require.NoError(t, s.Commit(ctx, "tok", sampleUser()))

	other := sampleUser()
	other.ID = "000000000000000000000001"
	require.ErrorIs(t, s.UpdateUser(ctx, other), ErrUserMismatch)

	updated := sampleUser()
	updated.Bio = "Gopher"
	require.NoError(t, s.UpdateUser(ctx, updated))

	restored := NewStore(db, nil)
	require.NoError(t, restored.Restore(ctx))
	u, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Gopher", u.Bio)
	tok, _ := restored.Credentials()
	assert.Equal(t, "tok", tok)
}

func TestTokenAndUserNeverDiverge(t *testing.T) {
	ctx := context.Background()
	s := NewStore(setupDB(t), nil)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if i%2 == 0 {
				_ = s.Commit(ctx, "tok", sampleUser())
			} else {
				_ = s.Clear(ctx)
			}
		}
		close(stop)
	}()

	for {
		select {
		case <-stop:
			wg.Wait()
			return
		default:
			snap := s.Snapshot()
			require.Equal(t, snap.Token != "", snap.User != nil)
		}
	}
}
