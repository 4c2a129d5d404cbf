// Package server 提供 HTTP API 核心基础设施
//
// 本包实现了 HRM 系统 RESTful API 的装配层，包括：
//   - 路由聚合（各领域包通过 RegisterRoutes 挂载）
//   - 认证 / 指标 / CORS 中间件链
//   - Prometheus 指标
//
// 文件组织：
//   - common.go: Handler 定义与通用工具函数
//   - handler.go: 路由配置
//   - metrics.go: Prometheus 指标
package server

import (
	"encoding/json"
	"net/http"

	"hrm-admin/internal/apiserver/auth"
	"hrm-admin/internal/shared/cache"
	"hrm-admin/internal/shared/storage"
)

// Handler API 装配器
//
// Handler 是所有 HTTP API 的入口，负责：
//   - 将请求路由到各领域处理器
//   - 管理存储层连接
//   - 持有认证组件与令牌黑名单
//
// 依赖接口说明（接口隔离原则）：
//   - store: MongoDB 存储层（持久化业务数据）
//   - blacklist: 令牌黑名单（注销后的 JWT 立即失效）
type Handler struct {
	store storage.PersistentStore // MongoDB 存储层

	// 缓存接口
	blacklist cache.TokenBlacklist // 令牌黑名单

	// 认证组件
	authCfg  auth.Config
	authn    *auth.Authenticator
	resolver *auth.EntityResolver

	// 内部组件
	metrics *Metrics // Prometheus 指标
}

// NewHandler 创建 Handler 实例
//
// 参数：
//   - store: MongoDB 存储层实例
//   - cacheStore: Redis 缓存实例，可为 nil（降级为无黑名单模式）
//   - authCfg: 认证配置（JWT 密钥、令牌有效期）
//
// 返回：
//   - 初始化完成的 Handler 实例
func NewHandler(store storage.PersistentStore, cacheStore cache.Cache, authCfg auth.Config) *Handler {
	h := &Handler{
		store:   store,
		authCfg: authCfg,
	}

	// 从 Cache 提取具体接口（接口隔离）
	if cacheStore != nil {
		h.blacklist = cacheStore
	} else {
		h.blacklist = cache.NewNoOpCache()
	}

	h.resolver = auth.NewEntityResolver(store)
	h.authn = auth.NewAuthenticator(store, store, h.resolver, authCfg)
	h.metrics = NewMetrics("hrm")
	return h
}

// GetMetrics 返回指标实例
func (h *Handler) GetMetrics() *Metrics {
	return h.metrics
}

// Authenticator 返回认证服务（用于启动期引导超管账户等场景）
func (h *Handler) Authenticator() *auth.Authenticator {
	return h.authn
}

// writeJSON 将数据以 JSON 格式写入 HTTP 响应
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Health 健康检查接口
//
// 路由: GET /health
//
// 用于负载均衡器和监控系统检查服务状态。
// 返回 {"status": "ok"} 表示服务正常运行。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
