package server

import "testing"

// TestNormalizePath 路径规范化避免指标高基数
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/api/v1/users", "/api/v1/users"},
		{"/api/v1/users/usr-1a2b3c4d5e6f", "/api/v1/users/{id}"},
		{"/api/v1/users/usr-1a2b3c4d5e6f/status", "/api/v1/users/{id}/status"},
		{"/api/v1/companies/register", "/api/v1/companies/register"},
		{"/api/v1/companies/login", "/api/v1/companies/login"},
		{"/api/v1/companies/com-9f8e7d6c5b4a", "/api/v1/companies/{id}"},
		{"/api/v1/leaves/lv-000000000001/status", "/api/v1/leaves/{id}/status"},
		{"/api/v1/auth/login", "/api/v1/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizePath(tt.input); got != tt.expected {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
