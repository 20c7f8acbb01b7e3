package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/karanpreetsingh462/FitGenius-Hub/pkg/keybuilder"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// fakeUserRepo counts primary lookups.
type fakeUserRepo struct {
	repo.UserRepository
	users   map[uuid.UUID]*model.User
	gets    int
	updates int
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.gets++
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, u *model.User) error {
	f.updates++
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetPasswordHash(_ context.Context, id uuid.UUID) (string, error) {
	u, ok := f.users[id]
	if !ok {
		return "", repo.ErrNotFound
	}
	return u.PasswordHash, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(&config.Config{Redis: config.RedisConfig{Addr: mr.Addr()}}, nopLogger())
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = NewClient(&config.Config{Redis: config.RedisConfig{Addr: mr.Addr()}}, nopLogger())
	assert.Error(t, err)
}

func TestUserCache_RoundTripDropsCredentials(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewUserCache(nopLogger(), client)
	ctx := context.Background()

	expire := time.Now().Add(time.Minute).UTC().Truncate(time.Second)
	u := model.NewUser("Ana", "ana@example.com", "bcrypt-hash")
	u.ResetPasswordToken = "digest"
	u.ResetPasswordExpire = &expire

	require.NoError(t, cache.Set(ctx, u, time.Hour))
	assert.True(t, mr.Exists(keybuilder.UserKey(u.ID)))
	assert.Equal(t, time.Hour, mr.TTL(keybuilder.UserKey(u.ID)))

	raw, err := mr.Get(keybuilder.UserKey(u.ID))
	require.NoError(t, err)
	assert.NotContains(t, raw, "bcrypt-hash")
	assert.NotContains(t, raw, "digest")

	got, err := cache.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PasswordHash)
	assert.Empty(t, got.ResetPasswordToken)
	assert.Nil(t, got.ResetPasswordExpire)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.Name, got.Name)

	require.NoError(t, cache.Delete(ctx, u.ID))
	_, err = cache.Get(ctx, u.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUserCache_CorruptEntry(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewUserCache(nopLogger(), client)
	id := uuid.New()
	require.NoError(t, mr.Set(keybuilder.UserKey(id), "{not json"))

	_, err := cache.Get(context.Background(), id)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repo.ErrNotFound)
}

func TestCachedUserRepository_CacheAside(t *testing.T) {
	_, client := newTestRedis(t)
	primary := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	cfg := &config.Config{Redis: config.RedisConfig{CacheTTL: time.Hour}}
	cached := NewCachedUserRepository(primary, NewUserCache(nopLogger(), client), cfg, nopLogger())
	ctx := context.Background()

	u := model.NewUser("Ana", "ana@example.com", "hash")
	primary.users[u.ID] = u

	_, err := cached.GetByID(ctx, u.ID)
	require.NoError(t, err)
	_, err = cached.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.gets, "second read is served from cache")

	u.Name = "Ana Maria"
	require.NoError(t, cached.UpdateProfile(ctx, u))
	got, err := cached.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, 2, primary.gets, "update invalidates the entry")

	require.NoError(t, cached.Delete(ctx, u.ID))
	_, err = cached.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCachedUserRepository_PasswordHashSkipsCache(t *testing.T) {
	_, client := newTestRedis(t)
	primary := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	cached := NewCachedUserRepository(primary, NewUserCache(nopLogger(), client), &config.Config{}, nopLogger())
	ctx := context.Background()

	u := model.NewUser("Ana", "ana@example.com", "bcrypt-hash")
	require.NoError(t, cached.Create(ctx, u))

	got, err := cached.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PasswordHash, "served from cache")

	hash, err := cached.GetPasswordHash(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bcrypt-hash", hash)
}

func TestCachedUserRepository_CreateWarmsCache(t *testing.T) {
	_, client := newTestRedis(t)
	primary := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	cached := NewCachedUserRepository(primary, NewUserCache(nopLogger(), client), &config.Config{}, nopLogger())
	ctx := context.Background()

	u := model.NewUser("Ana", "ana@example.com", "hash")
	require.NoError(t, cached.Create(ctx, u))

	_, err := cached.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, primary.gets)
	assert.Equal(t, 24*time.Hour, cached.ttl)
}

func TestTokenDenylist(t *testing.T) {
	mr, client := newTestRedis(t)
	d := NewTokenDenylist(nopLogger(), client)
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entries expire with the token")

	require.NoError(t, d.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists(keybuilder.RevokedTokenKey("jti-2")))
}
