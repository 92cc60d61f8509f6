package services

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *RedisService {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedisServiceWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestRedisSetGetDelete(t *testing.T) {
	svc := newTestRedis(t)

	type payload struct {
		Name string `json:"name"`
	}

	require.NoError(t, svc.Set("key", payload{Name: "value"}, 0))

	var got payload
	require.NoError(t, svc.Get("key", &got))
	assert.Equal(t, "value", got.Name)

	require.NoError(t, svc.Delete("key"))
	assert.Error(t, svc.Get("key", &got))
}

func TestReturnToSingleSlotConsumedOnce(t *testing.T) {
	svc := newTestRedis(t)

	require.NoError(t, svc.StoreReturnTo("session-1", "/api/users/property_listings"))
	// 后写覆盖前写，单槽位
	require.NoError(t, svc.StoreReturnTo("session-1", "/api/users/contacts"))

	path, err := svc.ConsumeReturnTo("session-1")
	require.NoError(t, err)
	assert.Equal(t, "/api/users/contacts", path)

	// 消费即清空
	path, err = svc.ConsumeReturnTo("session-1")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestReturnToIsPerSession(t *testing.T) {
	svc := newTestRedis(t)

	require.NoError(t, svc.StoreReturnTo("session-a", "/api/users/dashboard"))

	path, err := svc.ConsumeReturnTo("session-b")
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = svc.ConsumeReturnTo("session-a")
	require.NoError(t, err)
	assert.Equal(t, "/api/users/dashboard", path)
}
