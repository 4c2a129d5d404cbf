package auth

import (
	"log"
	"net/http"
	"strings"

	"hrm-admin/internal/shared/cache"
)

// 免认证路由白名单（精确匹配）
var publicRoutes = map[string]bool{
	"/api/v1/auth/register":      true,
	"/api/v1/auth/login":         true,
	"/api/v1/companies/register": true,
	"/api/v1/companies/login":    true,
	"/health":                    true,
	"/metrics":                   true,
}

func isPublicRoute(path string) bool {
	return publicRoutes[path]
}

// Middleware 创建 JWT 认证中间件
//
// 如果 cfg.Enabled() == false，直接放行所有请求（无认证模式）。
// 配置了失效名单时，已登出的令牌即使未过期也会被拒绝。
func Middleware(cfg Config, blacklist cache.TokenBlacklist) func(http.Handler) http.Handler {
	if blacklist == nil {
		blacklist = cache.NewNoOpCache()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 无认证模式：直接放行
			if !cfg.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			// 公开路由：直接放行
			if isPublicRoute(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			// 提取 Bearer Token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"invalid authorization header"}`, http.StatusUnauthorized)
				return
			}

			// 解析 JWT
			claims, err := ParseToken(cfg, parts[1])
			if err != nil {
				log.Printf("[auth] token parse error: %v", err)
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			// 失效名单检查
			revoked, err := blacklist.IsTokenRevoked(r.Context(), claims.ID)
			if err != nil {
				log.Printf("[auth] blacklist check error: %v", err)
				http.Error(w, `{"error":"service temporarily unavailable"}`, http.StatusServiceUnavailable)
				return
			}
			if revoked {
				http.Error(w, `{"error":"token has been revoked"}`, http.StatusUnauthorized)
				return
			}

			// 注入认证主体到 context
			user := &AuthUser{
				ID:        claims.Subject,
				Email:     claims.Email,
				UserType:  claims.UserType,
				CompanyID: claims.CompanyID,
			}
			ctx := WithAuthUser(r.Context(), user)

			// 注入租户 ID：super_admin 不限租户，公司主体以自身为租户
			switch user.UserType {
			case "super_admin":
				ctx = WithCompanyID(ctx, "")
			case PrincipalCompany:
				ctx = WithCompanyID(ctx, user.ID)
			default:
				ctx = WithCompanyID(ctx, user.CompanyID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly 管理权限专属路由中间件
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := GetAuthUser(r.Context())
		if user == nil || !user.IsAdmin() {
			http.Error(w, `{"error":"admin access required"}`, http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
