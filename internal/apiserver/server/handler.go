// Package server 路由配置
//
// 本文件定义 HTTP API 路由，将请求分发到各领域独立包。
package server

import (
	"net/http"

	"hrm-admin/internal/apiserver/auth"
	"hrm-admin/internal/apiserver/company"
	"hrm-admin/internal/apiserver/holiday"
	"hrm-admin/internal/apiserver/leave"
	"hrm-admin/internal/apiserver/org"
	"hrm-admin/internal/apiserver/role"
	"hrm-admin/internal/apiserver/shift"
	"hrm-admin/internal/apiserver/ticket"
	"hrm-admin/internal/apiserver/user"
)

// Router 返回配置好的 HTTP 路由
//
// 路由规则：
//
// 健康检查:
//   - GET /health - 服务健康检查
//
// 认证 (Auth):
//   - POST /api/v1/auth/register - 用户注册
//   - POST /api/v1/auth/login    - 用户登录
//   - POST /api/v1/auth/logout   - 注销（令牌加入黑名单）
//   - GET  /api/v1/auth/me       - 当前用户（附带实体详情）
//
// 公司 (Company):
//   - POST /api/v1/companies/register - 公司注册
//   - POST /api/v1/companies/login    - 公司登录
//   - GET/PUT/DELETE /api/v1/companies[/{id}]
//
// 用户与员工 (User/Employee/Admin):
//   - GET/PUT/PATCH/DELETE /api/v1/users[/{id}]
//   - CRUD /api/v1/employees[/{id}]
//   - CRUD /api/v1/admins[/{id}]
//
// 组织与排班 (Role/Org/Shift/Holiday):
//   - CRUD /api/v1/roles, /api/v1/departments, /api/v1/designations,
//     /api/v1/shifts, /api/v1/holidays
//
// 请假与工单 (Leave/Ticket):
//   - CRUD /api/v1/leaves[/{id}]，PATCH /api/v1/leaves/{id}/status 审批
//   - CRUD /api/v1/tickets[/{id}]
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// 健康检查
	mux.HandleFunc("GET /health", h.Health)

	// Prometheus 指标端点
	mux.Handle("GET /metrics", MetricsHandler())

	// Auth 接口
	authHandler := auth.NewHandler(h.store, h.authn, h.resolver, h.blacklist, h.authCfg)
	authHandler.SetMetrics(h.metrics)
	authHandler.RegisterRoutes(mux)

	// Company 接口
	companyHandler := company.NewHandler(h.store, h.authn, h.authCfg)
	companyHandler.SetMetrics(h.metrics)
	companyHandler.RegisterRoutes(mux)

	// User / Employee / Admin 接口
	userHandler := user.NewHandler(h.store, h.resolver)
	userHandler.RegisterRoutes(mux)

	// Role 接口
	roleHandler := role.NewHandler(h.store)
	roleHandler.RegisterRoutes(mux)

	// Department / Designation 接口
	orgHandler := org.NewHandler(h.store)
	orgHandler.RegisterRoutes(mux)

	// Shift 接口
	shiftHandler := shift.NewHandler(h.store)
	shiftHandler.RegisterRoutes(mux)

	// Holiday 接口
	holidayHandler := holiday.NewHandler(h.store)
	holidayHandler.RegisterRoutes(mux)

	// Leave 接口
	leaveHandler := leave.NewHandler(h.store)
	leaveHandler.RegisterRoutes(mux)

	// Ticket 接口
	ticketHandler := ticket.NewHandler(h.store)
	ticketHandler.RegisterRoutes(mux)

	// 应用指标中间件到 REST API
	apiHandler := h.metrics.MetricsMiddleware(mux)

	// 应用认证中间件
	authedHandler := auth.Middleware(h.authCfg, h.blacklist)(apiHandler)

	// 应用 CORS 中间件
	return corsMiddleware(authedHandler)
}

// corsMiddleware 添加 CORS 头支持跨域请求
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
