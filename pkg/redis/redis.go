package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var NilError = goredis.Nil

type Options = goredis.UniversalOptions

type RedisAdapter interface {
	Set(key string, value []byte, ttl time.Duration) error
	SetNX(key string, value []byte, ttl time.Duration) (bool, error)
	Get(key string) ([]byte, error)
	Del(key ...string) error
	Expire(key string, ttl time.Duration) error
	Keys(pattern string) ([]string, error)
}

type redisAdapter struct {
	prefix   string
	Conn     goredis.UniversalClient
	ConnName string
}

var redisLock = &sync.RWMutex{}
var redisInstance map[string]RedisAdapter

// NewRedisAdapter returns the adapter registered under connName, creating
// and caching it on first use. The prefix is prepended to every key.
func NewRedisAdapter(connName string, keysPrefix string, opts *goredis.UniversalOptions) (RedisAdapter, error) {
	redisLock.RLock()
	if redisInstance != nil {
		if adapter, ok := redisInstance[connName]; ok {
			redisLock.RUnlock()
			return adapter, nil
		}
	}
	redisLock.RUnlock()

	c := goredis.NewUniversalClient(opts)
	if cmd := c.Ping(context.Background()); cmd.Err() != nil {
		return nil, cmd.Err()
	}

	adapter := &redisAdapter{
		Conn:     c,
		prefix:   keysPrefix,
		ConnName: connName,
	}

	redisLock.Lock()
	if redisInstance == nil {
		redisInstance = make(map[string]RedisAdapter)
	}
	redisInstance[connName] = adapter
	redisLock.Unlock()

	return adapter, nil
}

func GetRedis(connName ...string) RedisAdapter {
	redisLock.RLock()
	defer redisLock.RUnlock()

	name := "default"
	if len(connName) > 0 && connName[0] != "" {
		name = connName[0]
	}

	if adapter, ok := redisInstance[name]; ok {
		return adapter
	}
	panic(fmt.Sprintf("redis adapter %q is not initialized", name))
}

func (r *redisAdapter) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *redisAdapter) Set(key string, value []byte, ttl time.Duration) error {
	return r.Conn.Set(context.Background(), r.key(key), value, ttl).Err()
}

func (r *redisAdapter) SetNX(key string, value []byte, ttl time.Duration) (bool, error) {
	return r.Conn.SetNX(context.Background(), r.key(key), value, ttl).Result()
}

func (r *redisAdapter) Get(key string) ([]byte, error) {
	return r.Conn.Get(context.Background(), r.key(key)).Bytes()
}

func (r *redisAdapter) Del(key ...string) error {
	if len(key) == 0 {
		return nil
	}
	keys := make([]string, len(key))
	for i, k := range key {
		keys[i] = r.key(k)
	}
	return r.Conn.Del(context.Background(), keys...).Err()
}

func (r *redisAdapter) Expire(key string, ttl time.Duration) error {
	return r.Conn.Expire(context.Background(), r.key(key), ttl).Err()
}

// Keys returns matching keys with the adapter prefix stripped, so callers
// can feed the result straight back into Get/Del.
func (r *redisAdapter) Keys(pattern string) ([]string, error) {
	keys, err := r.Conn.Keys(context.Background(), r.key(pattern)).Result()
	if err != nil {
		return nil, err
	}
	if r.prefix == "" {
		return keys, nil
	}
	stripped := make([]string, len(keys))
	for i, k := range keys {
		stripped[i] = k[len(r.prefix)+1:]
	}
	return stripped, nil
}
