// Package redis 基于 Redis 的令牌失效名单
//
// 登出时令牌的 JTI 写入这里，中间件在每次请求时查询；
// 条目 TTL 对齐令牌剩余有效期，由 Redis 过期机制自动回收。
package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 令牌失效名单存储
type Store struct {
	client *redis.Client
}

// NewStoreFromURL 从连接 URL 创建失效名单存储
func NewStoreFromURL(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("[redis] Token blacklist connected: %s", opts.Addr)
	return &Store{client: client}, nil
}

// Close 关闭 Redis 连接
func (s *Store) Close() error {
	return s.client.Close()
}
