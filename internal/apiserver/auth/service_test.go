package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// ============================================================================
// 测试替身
// ============================================================================

// fakeStore 进程内假存储，按需注入失败
type fakeStore struct {
	users       map[string]*model.User // key: email
	hashes      map[string]string      // key: user id
	employees   map[string]*model.Employee
	admins      map[string]*model.Admin
	superAdmins map[string]*model.SuperAdmin
	companies   map[string]*model.Company // key: email
	compHashes  map[string]string         // key: company id

	readErr      error // 注入所有读取失败
	lastLoginErr error // 注入登录时间更新失败
	lastLoginAt  *time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[string]*model.User{},
		hashes:      map[string]string{},
		employees:   map[string]*model.Employee{},
		admins:      map[string]*model.Admin{},
		superAdmins: map[string]*model.SuperAdmin{},
		companies:   map[string]*model.Company{},
		compHashes:  map[string]string{},
	}
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.users[email], nil
}

func (f *fakeStore) GetUserPasswordHash(ctx context.Context, id string) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	hash, ok := f.hashes[id]
	if !ok {
		return "", storage.ErrNotFound
	}
	return hash, nil
}

func (f *fakeStore) UpdateUserLastLogin(ctx context.Context, id string, at time.Time) error {
	if f.lastLoginErr != nil {
		return f.lastLoginErr
	}
	f.lastLoginAt = &at
	return nil
}

// UserStore 其余方法：本测试不触达
func (f *fakeStore) CreateUser(ctx context.Context, user *model.User) error { return nil }
func (f *fakeStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return nil, nil
}
func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, nil
}
func (f *fakeStore) ListUsers(ctx context.Context, filter storage.UserFilter) ([]*model.User, error) {
	return nil, nil
}
func (f *fakeStore) UpdateUser(ctx context.Context, user *model.User) error { return nil }
func (f *fakeStore) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	return nil
}
func (f *fakeStore) UpdateUserActive(ctx context.Context, id string, active bool) error { return nil }
func (f *fakeStore) DeleteUser(ctx context.Context, id string) error                    { return nil }

// EntityStore
func (f *fakeStore) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.employees[id], nil
}
func (f *fakeStore) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.admins[id], nil
}
func (f *fakeStore) GetSuperAdmin(ctx context.Context, id string) (*model.SuperAdmin, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.superAdmins[id], nil
}
func (f *fakeStore) CreateEmployee(ctx context.Context, emp *model.Employee) error { return nil }
func (f *fakeStore) ListEmployees(ctx context.Context, companyID string) ([]*model.Employee, error) {
	return nil, nil
}
func (f *fakeStore) ListEmployeesByDepartment(ctx context.Context, companyID, department string) ([]*model.Employee, error) {
	return nil, nil
}
func (f *fakeStore) UpdateEmployee(ctx context.Context, emp *model.Employee) error { return nil }
func (f *fakeStore) DeleteEmployee(ctx context.Context, id string) error           { return nil }
func (f *fakeStore) CreateAdmin(ctx context.Context, admin *model.Admin) error     { return nil }
func (f *fakeStore) ListAdmins(ctx context.Context, companyID string) ([]*model.Admin, error) {
	return nil, nil
}
func (f *fakeStore) DeleteAdmin(ctx context.Context, id string) error              { return nil }
func (f *fakeStore) CreateSuperAdmin(ctx context.Context, sa *model.SuperAdmin) error {
	return nil
}

// CompanyStore
func (f *fakeStore) GetCompanyByEmail(ctx context.Context, email string) (*model.Company, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.companies[email], nil
}
func (f *fakeStore) GetCompanyPasswordHash(ctx context.Context, id string) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	hash, ok := f.compHashes[id]
	if !ok {
		return "", storage.ErrNotFound
	}
	return hash, nil
}
func (f *fakeStore) CreateCompany(ctx context.Context, company *model.Company) error { return nil }
func (f *fakeStore) GetCompanyByID(ctx context.Context, id string) (*model.Company, error) {
	return nil, nil
}
func (f *fakeStore) ListCompanies(ctx context.Context) ([]*model.Company, error)     { return nil, nil }
func (f *fakeStore) UpdateCompany(ctx context.Context, company *model.Company) error { return nil }
func (f *fakeStore) DeleteCompany(ctx context.Context, id string) error              { return nil }

// 接口契约
var (
	_ storage.UserStore    = (*fakeStore)(nil)
	_ storage.EntityStore  = (*fakeStore)(nil)
	_ storage.CompanyStore = (*fakeStore)(nil)
)

// ============================================================================
// 测试环境
// ============================================================================

func testAuthenticator(t *testing.T) (*Authenticator, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	store.users["ravi@acme.com"] = &model.User{
		ID:       "usr-001",
		Email:    "ravi@acme.com",
		UserType: model.UserTypeEmployee,
		EntityID: "emp-001",
		IsActive: true,
	}
	store.hashes["usr-001"] = hash
	store.employees["emp-001"] = &model.Employee{
		ID: "emp-001", EmpCode: "E001", FirstName: "Ravi",
	}

	store.companies["hr@acme.com"] = &model.Company{
		ID:       "com-001",
		Email:    "hr@acme.com",
		IsActive: true,
	}
	store.compHashes["com-001"] = hash

	auth := NewAuthenticator(store, store, NewEntityResolver(store), testConfig())
	return auth, store
}

// ============================================================================
// Authenticate
// ============================================================================

func TestAuthenticate_Success(t *testing.T) {
	auth, store := testAuthenticator(t)

	user, entity, err := auth.Authenticate(context.Background(), "ravi@acme.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "usr-001", user.ID)

	// 实体解析成功
	require.NotNil(t, entity)
	emp, ok := entity.(*model.Employee)
	require.True(t, ok, "entity should be *model.Employee")
	assert.Equal(t, "emp-001", emp.ID)
	assert.Equal(t, model.UserTypeEmployee, entity.EntityType())

	// 登录时间已更新
	assert.NotNil(t, store.lastLoginAt)
	assert.NotNil(t, user.LastLoginAt)
}

func TestAuthenticate_CaseInsensitiveEmail(t *testing.T) {
	auth, _ := testAuthenticator(t)

	user, _, err := auth.Authenticate(context.Background(), "  Ravi@ACME.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "usr-001", user.ID)
}

// TestAuthenticate_EnumerationResistance 邮箱不存在与密码错误返回同一个哨兵值
func TestAuthenticate_EnumerationResistance(t *testing.T) {
	auth, _ := testAuthenticator(t)
	ctx := context.Background()

	_, _, errUnknown := auth.Authenticate(ctx, "nobody@acme.com", "whatever")
	_, _, errWrongPass := auth.Authenticate(ctx, "ravi@acme.com", "wrong-pass")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	// 完全相同的错误值，调用方无法区分两种失败
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestAuthenticate_DisabledAccount(t *testing.T) {
	auth, store := testAuthenticator(t)
	store.users["ravi@acme.com"].IsActive = false
	ctx := context.Background()

	// 密码正确才报停用
	_, _, err := auth.Authenticate(ctx, "ravi@acme.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrAccountDisabled)

	// 密码错误优先报凭证错误，不泄漏停用状态
	_, _, err = auth.Authenticate(ctx, "ravi@acme.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestAuthenticate_DanglingEntity 实体引用悬空：登录成功，档案为空
func TestAuthenticate_DanglingEntity(t *testing.T) {
	auth, store := testAuthenticator(t)
	delete(store.employees, "emp-001")

	user, entity, err := auth.Authenticate(context.Background(), "ravi@acme.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Nil(t, entity)
}

func TestAuthenticate_UnknownRole(t *testing.T) {
	auth, store := testAuthenticator(t)
	store.users["ravi@acme.com"].UserType = model.UserType("contractor")

	_, _, err := auth.Authenticate(context.Background(), "ravi@acme.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestAuthenticate_StoreUnavailable(t *testing.T) {
	auth, store := testAuthenticator(t)
	store.readErr = storage.ErrUnavailable

	_, _, err := auth.Authenticate(context.Background(), "ravi@acme.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// TestAuthenticate_LastLoginBestEffort 登录时间更新失败不影响登录结果
func TestAuthenticate_LastLoginBestEffort(t *testing.T) {
	auth, store := testAuthenticator(t)
	store.lastLoginErr = errors.New("write timeout")

	user, _, err := auth.Authenticate(context.Background(), "ravi@acme.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Nil(t, user.LastLoginAt)
}

// ============================================================================
// AuthenticateCompany
// ============================================================================

func TestAuthenticateCompany_Success(t *testing.T) {
	auth, _ := testAuthenticator(t)

	company, err := auth.AuthenticateCompany(context.Background(), "HR@Acme.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "com-001", company.ID)
}

func TestAuthenticateCompany_EnumerationResistance(t *testing.T) {
	auth, _ := testAuthenticator(t)
	ctx := context.Background()

	_, errUnknown := auth.AuthenticateCompany(ctx, "nobody@acme.com", "whatever")
	_, errWrongPass := auth.AuthenticateCompany(ctx, "hr@acme.com", "wrong-pass")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

// TestAuthenticateCompany_NoUserFallback 公司登录不回退到用户集合
func TestAuthenticateCompany_NoUserFallback(t *testing.T) {
	auth, _ := testAuthenticator(t)

	// ravi@acme.com 只存在于用户集合
	_, err := auth.AuthenticateCompany(context.Background(), "ravi@acme.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateCompany_Disabled(t *testing.T) {
	auth, store := testAuthenticator(t)
	store.companies["hr@acme.com"].IsActive = false

	_, err := auth.AuthenticateCompany(context.Background(), "hr@acme.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

// ============================================================================
// EntityResolver
// ============================================================================

func TestResolveEntity_ClosedSet(t *testing.T) {
	_, store := testAuthenticator(t)
	store.admins["adm-001"] = &model.Admin{ID: "adm-001", Username: "hradmin"}
	store.superAdmins["sup-001"] = &model.SuperAdmin{ID: "sup-001", Username: "root"}
	resolver := NewEntityResolver(store)
	ctx := context.Background()

	tests := []struct {
		name     string
		userType model.UserType
		entityID string
		wantType model.UserType
		wantErr  error
	}{
		{"员工", model.UserTypeEmployee, "emp-001", model.UserTypeEmployee, nil},
		{"管理员", model.UserTypeAdmin, "adm-001", model.UserTypeAdmin, nil},
		{"超管", model.UserTypeSuperAdmin, "sup-001", model.UserTypeSuperAdmin, nil},
		{"悬空引用", model.UserTypeEmployee, "emp-gone", "", storage.ErrNotFound},
		{"未知类型", model.UserType("contractor"), "x", "", ErrUnknownRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &model.User{ID: "u", UserType: tt.userType, EntityID: tt.entityID}
			entity, err := resolver.ResolveEntity(ctx, user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, entity)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, entity)
			assert.Equal(t, tt.wantType, entity.EntityType())
			assert.Equal(t, tt.entityID, entity.EntityID())
		})
	}
}
