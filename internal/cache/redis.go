package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stroyprombeton/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "stb"

type state struct {
	client *redis.Client
	prefix string
}

var current = state{prefix: defaultPrefix}

// InitRedis 初始化 Redis 客户端。未启用时所有读写都是空操作。
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		current = state{prefix: defaultPrefix}
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	current = state{
		prefix: prefix,
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", host, port),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
	return nil
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return current.client != nil
}

// Client 获取 Redis 客户端，未启用时为 nil
func Client() *redis.Client {
	return current.client
}

// Prefix 当前缓存键前缀
func Prefix() string {
	return current.prefix
}

// GetJSON 读取 JSON 缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	raw, err := current.client.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, dest)
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return current.client.Set(ctx, buildKey(key), payload, ttl).Err()
}

// Remember 读取缓存，未命中时调用 load 并回写。
// 缓存读写失败不影响结果，只通过 onCacheErr 上报。
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error), onCacheErr func(op string, err error)) (T, error) {
	var cached T
	hit, err := GetJSON(ctx, key, &cached)
	if err == nil && hit {
		return cached, nil
	}
	if err != nil && onCacheErr != nil {
		onCacheErr("get", err)
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	if err := SetJSON(ctx, key, value, ttl); err != nil && onCacheErr != nil {
		onCacheErr("set", err)
	}
	return value, nil
}

// Del 删除缓存
func Del(ctx context.Context, keys ...string) error {
	if !Enabled() || len(keys) == 0 {
		return nil
	}
	built := make([]string, len(keys))
	for i, key := range keys {
		built[i] = buildKey(key)
	}
	return current.client.Del(ctx, built...).Err()
}

func buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return current.prefix
	}
	return current.prefix + ":" + trimmed
}
