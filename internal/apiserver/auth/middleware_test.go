package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrm-admin/internal/shared/cache"
)

func TestIsPublicRoute(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		// 公开路由
		{"login", "/api/v1/auth/login", true},
		{"register", "/api/v1/auth/register", true},
		{"company login", "/api/v1/companies/login", true},
		{"company register", "/api/v1/companies/register", true},
		{"health", "/health", true},
		{"metrics", "/metrics", true},

		// 业务路由需要 JWT
		{"me", "/api/v1/auth/me", false},
		{"logout", "/api/v1/auth/logout", false},
		{"list users", "/api/v1/users", false},
		{"list companies", "/api/v1/companies", false},
		{"leaves", "/api/v1/leaves", false},

		// 白名单是精确匹配，不是前缀匹配
		{"login suffix", "/api/v1/auth/login-anything", false},
		{"register subpath", "/api/v1/auth/register/extra", false},
		{"health suffix", "/healthz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isPublicRoute(tt.path)
			if got != tt.expected {
				t.Errorf("isPublicRoute(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

// echoHandler 记录透传到 handler 的认证主体
func echoHandler(captured **AuthUser, companyID *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetAuthUser(r.Context())
		*companyID = GetCompanyID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_Flow(t *testing.T) {
	cfg := testConfig()
	blacklist := cache.NewMemoryCache()
	var gotUser *AuthUser
	var gotCompanyID string
	handler := Middleware(cfg, blacklist)(echoHandler(&gotUser, &gotCompanyID))

	token, err := GenerateToken(cfg, "usr-001", "a@x.com", "employee", "com-001")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Run("缺少认证头", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("格式错误的认证头", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		r.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("无效令牌", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		r.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("有效令牌放行并注入主体", func(t *testing.T) {
		gotUser, gotCompanyID = nil, ""
		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if gotUser == nil || gotUser.ID != "usr-001" {
			t.Fatalf("AuthUser = %+v, want usr-001", gotUser)
		}
		if gotCompanyID != "com-001" {
			t.Errorf("company id = %q, want com-001", gotCompanyID)
		}
	})

	t.Run("公开路由免认证", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("已吊销令牌被拒绝", func(t *testing.T) {
		claims, err := ParseToken(cfg, token)
		if err != nil {
			t.Fatalf("ParseToken: %v", err)
		}
		if err := blacklist.RevokeToken(context.Background(), claims.ID, time.Hour); err != nil {
			t.Fatalf("RevokeToken: %v", err)
		}

		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

// TestMiddleware_TenantScoping 不同主体类型的租户注入
func TestMiddleware_TenantScoping(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name          string
		subjectID     string
		userType      string
		companyID     string
		wantCompanyID string
	}{
		{"员工限定本公司", "usr-1", "employee", "com-1", "com-1"},
		{"管理员限定本公司", "usr-2", "admin", "com-1", "com-1"},
		{"超管不限租户", "usr-3", "super_admin", "", ""},
		{"公司主体以自身为租户", "com-9", PrincipalCompany, "", "com-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser *AuthUser
			var gotCompanyID string
			handler := Middleware(cfg, nil)(echoHandler(&gotUser, &gotCompanyID))

			token, err := GenerateToken(cfg, tt.subjectID, "x@x.com", tt.userType, tt.companyID)
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}
			r := httptest.NewRequest("GET", "/api/v1/users", nil)
			r.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if gotCompanyID != tt.wantCompanyID {
				t.Errorf("company id = %q, want %q", gotCompanyID, tt.wantCompanyID)
			}
		})
	}
}

func TestMiddleware_DisabledAuth(t *testing.T) {
	cfg := DefaultConfig() // JWTSecret 为空：无认证模式
	var gotUser *AuthUser
	var gotCompanyID string
	handler := Middleware(cfg, nil)(echoHandler(&gotUser, &gotCompanyID))

	r := httptest.NewRequest("GET", "/api/v1/users", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if gotUser != nil {
		t.Errorf("AuthUser = %+v, want nil in no-auth mode", gotUser)
	}
}

func TestAdminOnly(t *testing.T) {
	called := false
	handler := AdminOnly(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("无主体拒绝", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		w := httptest.NewRecorder()
		handler(w, r)
		if w.Code != http.StatusForbidden || called {
			t.Errorf("status = %d, called = %v", w.Code, called)
		}
	})

	t.Run("员工拒绝", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		ctx := WithAuthUser(r.Context(), &AuthUser{ID: "u", UserType: "employee"})
		w := httptest.NewRecorder()
		handler(w, r.WithContext(ctx))
		if w.Code != http.StatusForbidden || called {
			t.Errorf("status = %d, called = %v", w.Code, called)
		}
	})

	t.Run("管理员放行", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		ctx := WithAuthUser(r.Context(), &AuthUser{ID: "u", UserType: "admin"})
		w := httptest.NewRecorder()
		handler(w, r.WithContext(ctx))
		if w.Code != http.StatusOK || !called {
			t.Errorf("status = %d, called = %v", w.Code, called)
		}
	})

	t.Run("公司主体放行", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/api/v1/users", nil)
		ctx := WithAuthUser(r.Context(), &AuthUser{ID: "c", UserType: PrincipalCompany})
		w := httptest.NewRecorder()
		handler(w, r.WithContext(ctx))
		if w.Code != http.StatusOK || !called {
			t.Errorf("status = %d, called = %v", w.Code, called)
		}
	})
}
