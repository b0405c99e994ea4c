package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkhouse/storefront/internal/catalog"
	"github.com/inkhouse/storefront/internal/checkout"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, 30*time.Minute), mr
}

func populated(t *testing.T) *Session {
	s := New()
	s.SignIn(User{ID: 1, Email: "ada@example.com", Name: "ada"}, "tok")
	require.NoError(t, s.Cart.Add(catalog.Product{ID: 3, Name: "Poster", Price: 29.99}, 2))
	s.Checkout = &checkout.Flow{Stage: checkout.StagePayment}
	return s
}

func TestStoresRoundTrip(t *testing.T) {
	redisStore, _ := setupTestRedis(t)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := populated(t)
			require.NoError(t, store.Save(ctx, s))

			loaded, err := store.Load(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, s.ID, loaded.ID)
			assert.True(t, loaded.Authenticated())
			assert.Equal(t, "ada@example.com", loaded.User.Email)
			assert.Equal(t, 2, loaded.Cart.ItemCount())
			assert.Equal(t, 59.98, loaded.Cart.Total())
			require.NotNil(t, loaded.Checkout)
			assert.Equal(t, checkout.StagePayment, loaded.Checkout.Stage)

			require.NoError(t, store.Delete(ctx, s.ID))
			_, err = store.Load(ctx, s.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	redisStore, _ := setupTestRedis(t)
	_, err := redisStore.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewMemoryStore().Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	s := New()
	require.NoError(t, store.Save(ctx, s))
	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey(s.ID)))

	mr.FastForward(31 * time.Minute)
	_, err := store.Load(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreCorruptDocument(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(sessionKey("bad"), "{not json"))

	_, err := store.Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoadFillsMissingCart(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(sessionKey("legacy"), `{"id":"legacy","user":null}`))

	s, err := store.Load(context.Background(), "legacy")
	require.NoError(t, err)
	require.NotNil(t, s.Cart)
	assert.True(t, s.Cart.IsEmpty())
}

func TestSignOutKeepsCart(t *testing.T) {
	s := populated(t)
	s.SignOut()
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Checkout)
	assert.Equal(t, 2, s.Cart.ItemCount())
}
