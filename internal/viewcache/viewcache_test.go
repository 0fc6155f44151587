package viewcache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/invoice-dashboard/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	adapter, err := redis.NewRedisAdapter(t.Name(), "dashboard", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, New(adapter, time.Minute)
}

func TestCache_PutGet(t *testing.T) {
	_, cache := setupCache(t)

	_, ok := cache.Get("/dashboard")
	assert.False(t, ok)

	require.NoError(t, cache.Put("/dashboard", []byte(`{"cards":true}`)))

	payload, ok := cache.Get("/dashboard")
	require.True(t, ok)
	assert.Equal(t, `{"cards":true}`, string(payload))
}

func TestCache_InvalidateDropsParameterizedVariants(t *testing.T) {
	_, cache := setupCache(t)

	require.NoError(t, cache.Put("/dashboard/invoices", []byte("page-default")))
	require.NoError(t, cache.Put("/dashboard/invoices?query=amy&page=2", []byte("page-2")))
	require.NoError(t, cache.Put("/dashboard/customers", []byte("customers")))

	require.NoError(t, cache.Invalidate("/dashboard/invoices"))

	_, ok := cache.Get("/dashboard/invoices")
	assert.False(t, ok)
	_, ok = cache.Get("/dashboard/invoices?query=amy&page=2")
	assert.False(t, ok)

	// other paths survive
	payload, ok := cache.Get("/dashboard/customers")
	require.True(t, ok)
	assert.Equal(t, "customers", string(payload))
}

func TestCache_InvalidateEmptyPathIsNoop(t *testing.T) {
	_, cache := setupCache(t)
	assert.NoError(t, cache.Invalidate("/dashboard/invoices"))
}

func TestCache_EntriesExpire(t *testing.T) {
	mr, cache := setupCache(t)

	require.NoError(t, cache.Put("/dashboard", []byte("x")))
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get("/dashboard")
	assert.False(t, ok)
}
