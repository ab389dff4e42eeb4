package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchitttt/qkart-backend/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func testCart(email string) *domain.Cart {
	return &domain.Cart{
		Email: email,
		Items: []domain.CartItem{
			{Product: domain.Product{ID: "p1", Name: "ball", Cost: 20}, Quantity: 2},
			{Product: domain.Product{ID: "p2", Name: "bat", Cost: 5}, Quantity: 3},
		},
		PaymentOption: domain.DefaultPaymentOption,
	}
}

func TestGet_Success(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	email := "crio-user@gmail.com"

	cartJSON, err := json.Marshal(testCart(email))
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey(email), string(cartJSON)))

	result, err := c.Get(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, email, result.Email)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, "p1", result.Items[0].Product.ID)
}

func TestGet_CacheMiss(t *testing.T) {
	c, _ := setupTestRedis(t)

	result, err := c.Get(context.Background(), "nonexistent@example.com")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	c, mr := setupTestRedis(t)
	email := "crio-user@gmail.com"

	require.NoError(t, mr.Set(cacheKey(email), "{not json"))

	_, err := c.Get(context.Background(), email)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_RoundTrip(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	email := "crio-user@gmail.com"

	require.NoError(t, c.Set(ctx, email, testCart(email)))
	assert.True(t, mr.Exists(cacheKey(email)))

	result, err := c.Get(ctx, email)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, float64(20), result.Items[0].Product.Cost)
}

func TestSet_HasTTL(t *testing.T) {
	c, mr := setupTestRedis(t)
	email := "crio-user@gmail.com"

	require.NoError(t, c.Set(context.Background(), email, testCart(email)))
	assert.Greater(t, mr.TTL(cacheKey(email)).Minutes(), 0.0)
}

func TestDelete_RemovesEntry(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	email := "crio-user@gmail.com"

	require.NoError(t, c.Set(ctx, email, testCart(email)))
	require.NoError(t, c.Delete(ctx, email))
	assert.False(t, mr.Exists(cacheKey(email)))

	_, err := c.Get(ctx, email)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete_MissingKeyIsNoop(t *testing.T) {
	c, _ := setupTestRedis(t)
	assert.NoError(t, c.Delete(context.Background(), "nonexistent@example.com"))
}
