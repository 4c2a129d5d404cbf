package company

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrm-admin/internal/apiserver/auth"
	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// fakeCompanyStore 注册路径用的假存储
type fakeCompanyStore struct {
	created   *model.Company
	createErr error
}

func (f *fakeCompanyStore) CreateCompany(ctx context.Context, company *model.Company) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = company
	return nil
}
func (f *fakeCompanyStore) GetCompanyByEmail(ctx context.Context, email string) (*model.Company, error) {
	return nil, nil
}
func (f *fakeCompanyStore) GetCompanyByID(ctx context.Context, id string) (*model.Company, error) {
	return nil, nil
}
func (f *fakeCompanyStore) GetCompanyPasswordHash(ctx context.Context, id string) (string, error) {
	return "", storage.ErrNotFound
}
func (f *fakeCompanyStore) ListCompanies(ctx context.Context) ([]*model.Company, error) {
	return nil, nil
}
func (f *fakeCompanyStore) UpdateCompany(ctx context.Context, company *model.Company) error {
	return nil
}
func (f *fakeCompanyStore) DeleteCompany(ctx context.Context, id string) error { return nil }

var _ storage.CompanyStore = (*fakeCompanyStore)(nil)

func testHandler(store *fakeCompanyStore) *Handler {
	cfg := auth.DefaultConfig()
	cfg.JWTSecret = "test-secret"
	authn := auth.NewAuthenticator(nil, store, nil, cfg)
	return NewHandler(store, authn, cfg)
}

// TestRegister_Validation 注册入参校验
func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			"完整请求",
			`{"company_name":"Acme","email":"hr@acme.com","password":"secret-pass","gst_number":"22aaaaa0000a1z5"}`,
			http.StatusCreated,
		},
		{
			"缺少 GST",
			`{"company_name":"Acme","email":"hr@acme.com","password":"secret-pass"}`,
			http.StatusBadRequest,
		},
		{
			"密码过短",
			`{"company_name":"Acme","email":"hr@acme.com","password":"short","gst_number":"22AAAAA0000A1Z5"}`,
			http.StatusBadRequest,
		},
		{
			"邮箱格式非法",
			`{"company_name":"Acme","email":"not-an-email","password":"secret-pass","gst_number":"22AAAAA0000A1Z5"}`,
			http.StatusBadRequest,
		},
		{
			"无效 JSON",
			`{invalid}`,
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeCompanyStore{}
			h := testHandler(store)

			r := httptest.NewRequest("POST", "/api/v1/companies/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.Register(w, r)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

// TestRegister_Normalization 邮箱小写、GST 大写、哈希不回显
func TestRegister_Normalization(t *testing.T) {
	store := &fakeCompanyStore{}
	h := testHandler(store)

	body := `{"company_name":"Acme","email":" HR@Acme.COM ","password":"secret-pass","gst_number":"22aaaaa0000a1z5"}`
	r := httptest.NewRequest("POST", "/api/v1/companies/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Register(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	if store.created.Email != "hr@acme.com" {
		t.Errorf("Email = %q, want hr@acme.com", store.created.Email)
	}
	if store.created.GSTNumber != "22AAAAA0000A1Z5" {
		t.Errorf("GSTNumber = %q, want uppercase", store.created.GSTNumber)
	}
	if store.created.PasswordHash == "" || store.created.PasswordHash == "secret-pass" {
		t.Error("password was not hashed before storage")
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password_hash")) {
		t.Error("password_hash leaked into response")
	}
}

// TestRegister_Duplicate 唯一索引冲突映射为 409
func TestRegister_Duplicate(t *testing.T) {
	store := &fakeCompanyStore{createErr: storage.ErrDuplicate}
	h := testHandler(store)

	body := `{"company_name":"Acme","email":"hr@acme.com","password":"secret-pass","gst_number":"22AAAAA0000A1Z5"}`
	r := httptest.NewRequest("POST", "/api/v1/companies/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Register(w, r)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}
