package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/database"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

type brokenStore struct{ MemoryStore }

func (b *brokenStore) Load(ctx context.Context) (string, string, error) {
	return "", "", errors.New("keychain locked")
}

func testUser() user.User {
	return user.User{ID: "u1", Name: "Ana", Email: "ana@example.com", UserType: user.TypePassenger, IsActive: true}
}

// TestAccessor_RoundTrip tests write then read
func TestAccessor_RoundTrip(t *testing.T) {
	ctx := context.Background()
	acc := NewAccessor(NewMemoryStore(), logger.NewNop())

	require.NoError(t, acc.Write(ctx, "abc", testUser()))

	s, err := acc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", s.Token)
	assert.Equal(t, user.TypePassenger, s.User.UserType)
	assert.Equal(t, "Ana", s.User.Name)
}

// TestAccessor_PartialWriteIsAbsent tests token without user
func TestAccessor_PartialWriteIsAbsent(t *testing.T) {
	store := NewMemoryStore()
	store.Set(KeyAccessToken, "abc")
	acc := NewAccessor(store, logger.NewNop())

	_, err := acc.Read(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)

	store = NewMemoryStore()
	store.Set(KeyUser, `{"user_type":"admin"}`)
	_, err = NewAccessor(store, logger.NewNop()).Read(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

// TestAccessor_CorruptUser tests an undecodable user record
func TestAccessor_CorruptUser(t *testing.T) {
	store := NewMemoryStore()
	store.Set(KeyAccessToken, "abc")
	store.Set(KeyUser, "{not json")

	_, err := NewAccessor(store, logger.NewNop()).Read(context.Background())
	assert.ErrorIs(t, err, ErrCorruptSession)
}

// TestAccessor_ReadFailureFailsOpen tests storage errors read as absent
func TestAccessor_ReadFailureFailsOpen(t *testing.T) {
	acc := NewAccessor(&brokenStore{}, logger.NewNop())

	s, err := acc.Read(context.Background())
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNoSession)
}

// TestAccessor_RejectsEmptyToken tests that a write never persists a half session
func TestAccessor_RejectsEmptyToken(t *testing.T) {
	store := NewMemoryStore()
	err := NewAccessor(store, logger.NewNop()).Write(context.Background(), "", testUser())

	assert.ErrorIs(t, err, ErrEmptyToken)
	_, ok := store.Get(KeyUser)
	assert.False(t, ok)
}

// TestStores_Contract runs the same scenario against every backend
func TestStores_Contract(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	db, err := database.NewSQLiteDB(database.Config{Path: filepath.Join(t.TempDir(), "session.db")})
	require.NoError(t, err)
	sqliteStore, err := NewSQLiteStore(ctx, db)
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(rdb, "test:"),
		"sqlite": sqliteStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			token, raw, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)
			assert.Empty(t, raw)

			require.NoError(t, store.Save(ctx, "tok-1", `{"id":"1"}`))
			require.NoError(t, store.Save(ctx, "tok-2", `{"id":"2"}`))

			token, raw, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "tok-2", token)
			assert.Equal(t, `{"id":"2"}`, raw)

			require.NoError(t, store.Clear(ctx))
			token, raw, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)
			assert.Empty(t, raw)
		})
	}
}

// TestRedisStore_UsesPrefixedKeys tests key layout
func TestRedisStore_UsesPrefixedKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "ridehail:")
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), "abc", `{"id":"1"}`))

	got, err := mr.Get("ridehail:access_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
	assert.True(t, mr.Exists("ridehail:user"))
}
