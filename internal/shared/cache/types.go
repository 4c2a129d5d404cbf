// Package cache 缓存层类型定义
package cache

import "time"

// ============================================================================
// Key 前缀和 TTL 常量
// ============================================================================

const (
	// Key 前缀
	KeyTokenBlacklist = "token_blacklist:"

	// TTLTokenBlacklistMin 失效名单条目的最小 TTL
	// 剩余有效期过短时兜底，避免写入即过期的竞态
	TTLTokenBlacklistMin = 5 * time.Second
)
