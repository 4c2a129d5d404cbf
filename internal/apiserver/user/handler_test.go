package user

import (
	"net/http/httptest"
	"testing"

	"hrm-admin/internal/apiserver/auth"
)

// TestScopedCompanyID 租户范围解析
//
// 认证主体带租户时查询参数被忽略；super_admin（空租户）
// 才允许通过 company_id 参数指定范围。
func TestScopedCompanyID(t *testing.T) {
	tests := []struct {
		name       string
		ctxCompany string
		query      string
		expected   string
	}{
		{"租户主体固定范围", "com-001", "", "com-001"},
		{"租户主体忽略查询参数", "com-001", "?company_id=com-999", "com-001"},
		{"超管用查询参数", "", "?company_id=com-002", "com-002"},
		{"超管不限范围", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/users"+tt.query, nil)
			if tt.ctxCompany != "" {
				r = r.WithContext(auth.WithCompanyID(r.Context(), tt.ctxCompany))
			}
			if got := scopedCompanyID(r); got != tt.expected {
				t.Errorf("scopedCompanyID() = %q, want %q", got, tt.expected)
			}
		})
	}
}
