package mongostore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// testStore 创建测试用 Store，使用独立数据库避免污染
func testStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	dbName := "hrm_admin_test"
	s, err := NewStore(uri, dbName)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	// 清空测试数据库
	ctx := context.Background()
	if err := s.db.Drop(ctx); err != nil {
		t.Fatalf("Failed to drop test database: %v", err)
	}
	// 重新创建索引
	if err := s.ensureIndexes(ctx); err != nil {
		t.Fatalf("Failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		s.db.Drop(context.Background())
		s.Close()
	})

	return s
}

// Compile-time interface check
var _ storage.PersistentStore = (*Store)(nil)

func testUser(id, email, username string) *model.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &model.User{
		ID:           id,
		Email:        model.NormalizeEmail(email),
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		Mobile:       "9876543210",
		PasswordHash: "$2a$12$fixed-digest-for-tests",
		UserType:     model.UserTypeEmployee,
		EntityID:     "emp-" + id,
		CompanyID:    "com-001",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserCRUD(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	user := testUser("usr-001", "a@x.com", "emp001")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// 重复邮箱 → ErrDuplicate
	dup := testUser("usr-002", "a@x.com", "emp002")
	if err := s.CreateUser(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("duplicate email error = %v, want ErrDuplicate", err)
	}

	// 重复用户名 → ErrDuplicate
	dup = testUser("usr-003", "b@x.com", "emp001")
	if err := s.CreateUser(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("duplicate username error = %v, want ErrDuplicate", err)
	}

	// 默认读取不携带凭证字段
	got, err := s.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil {
		t.Fatal("GetUserByEmail returned nil")
	}
	if got.PasswordHash != "" {
		t.Errorf("PasswordHash leaked through default read: %q", got.PasswordHash)
	}

	// 大小写不敏感查找：查询侧规范化
	got, err = s.GetUserByEmail(ctx, "A@X.com")
	if err != nil || got == nil {
		t.Fatalf("GetUserByEmail(mixed case) = %v, %v", got, err)
	}
	if got.ID != "usr-001" {
		t.Errorf("ID = %q, want usr-001", got.ID)
	}

	// 凭证字段显式读取
	hash, err := s.GetUserPasswordHash(ctx, "usr-001")
	if err != nil {
		t.Fatalf("GetUserPasswordHash: %v", err)
	}
	if hash != "$2a$12$fixed-digest-for-tests" {
		t.Errorf("hash = %q", hash)
	}
	if _, err := s.GetUserPasswordHash(ctx, "nonexistent"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetUserPasswordHash(nonexistent) = %v, want ErrNotFound", err)
	}

	// 不存在的记录返回 (nil, nil)
	got, err = s.GetUserByID(ctx, "nonexistent")
	if err != nil || got != nil {
		t.Errorf("GetUserByID(nonexistent) = %v, %v, want nil, nil", got, err)
	}

	// Delete
	if err := s.DeleteUser(ctx, "usr-001"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := s.DeleteUser(ctx, "usr-001"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteUser = %v, want ErrNotFound", err)
	}
}

// TestUpdateUser_PasswordHashUntouched 不改密码的档案保存对哈希零副作用
func TestUpdateUser_PasswordHashUntouched(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	user := testUser("usr-010", "hash@x.com", "emp010")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	before, err := s.GetUserPasswordHash(ctx, "usr-010")
	if err != nil {
		t.Fatalf("GetUserPasswordHash: %v", err)
	}

	user.FirstName = "Renamed"
	user.Mobile = "9998887776"
	if err := s.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	after, err := s.GetUserPasswordHash(ctx, "usr-010")
	if err != nil {
		t.Fatalf("GetUserPasswordHash after update: %v", err)
	}
	if before != after {
		t.Errorf("password hash changed across profile update: %q -> %q", before, after)
	}

	got, _ := s.GetUserByID(ctx, "usr-010")
	if got.FirstName != "Renamed" {
		t.Errorf("FirstName = %q, want Renamed", got.FirstName)
	}
}

func TestListUsers_SearchAndFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	users := []*model.User{
		testUser("usr-101", "ravi@acme.com", "RAVI01"),
		testUser("usr-102", "priya@acme.com", "priya01"),
		testUser("usr-103", "john@other.com", "john01"),
	}
	users[2].CompanyID = "com-002"
	users[2].IsActive = false
	for _, u := range users {
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser(%s): %v", u.ID, err)
		}
	}

	// 大小写不敏感搜索
	got, err := s.ListUsers(ctx, storage.UserFilter{Search: "ravi"})
	if err != nil {
		t.Fatalf("ListUsers(search): %v", err)
	}
	if len(got) != 1 || got[0].ID != "usr-101" {
		t.Errorf("search 'ravi' = %d results, want usr-101", len(got))
	}

	// 公司过滤
	got, err = s.ListUsers(ctx, storage.UserFilter{CompanyID: "com-001"})
	if err != nil {
		t.Fatalf("ListUsers(company): %v", err)
	}
	if len(got) != 2 {
		t.Errorf("company filter = %d results, want 2", len(got))
	}

	// 激活状态过滤
	active := false
	got, err = s.ListUsers(ctx, storage.UserFilter{IsActive: &active})
	if err != nil {
		t.Fatalf("ListUsers(inactive): %v", err)
	}
	if len(got) != 1 || got[0].ID != "usr-103" {
		t.Errorf("inactive filter = %d results", len(got))
	}

	// 列表读取同样不泄漏凭证
	for _, u := range got {
		if u.PasswordHash != "" {
			t.Errorf("PasswordHash leaked in list for %s", u.ID)
		}
	}
}

func TestEntityStores(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	emp := &model.Employee{
		ID: "emp-001", CompanyID: "com-001", EmpCode: "E001",
		FirstName: "Asha", LastName: "Rao", Email: "asha@acme.com",
		Department: "engineering", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.CreateEmployee(ctx, emp); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	got, err := s.GetEmployee(ctx, "emp-001")
	if err != nil || got == nil {
		t.Fatalf("GetEmployee = %v, %v", got, err)
	}

	byDept, err := s.ListEmployeesByDepartment(ctx, "com-001", "engineering")
	if err != nil {
		t.Fatalf("ListEmployeesByDepartment: %v", err)
	}
	if len(byDept) != 1 {
		t.Errorf("by department = %d, want 1", len(byDept))
	}

	admin := &model.Admin{
		ID: "adm-001", CompanyID: "com-001", Username: "hradmin",
		Email: "hr@acme.com", Permissions: []string{"read", "write"},
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	gotAdmin, err := s.GetAdmin(ctx, "adm-001")
	if err != nil || gotAdmin == nil {
		t.Fatalf("GetAdmin = %v, %v", gotAdmin, err)
	}

	sa := &model.SuperAdmin{
		ID: "sup-001", Username: "root", Email: "root@hrm.io",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.CreateSuperAdmin(ctx, sa); err != nil {
		t.Fatalf("CreateSuperAdmin: %v", err)
	}
	gotSA, err := s.GetSuperAdmin(ctx, "sup-001")
	if err != nil || gotSA == nil {
		t.Fatalf("GetSuperAdmin = %v, %v", gotSA, err)
	}
}

func TestCompanyCRUD(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	company := &model.Company{
		ID: "com-001", CompanyName: "Acme Corp",
		Email: "hr@acme.com", Phone: "9876543210",
		Address: "42 Industrial Estate", GSTNumber: "22AAAAA0000A1Z5",
		PasswordHash: "$2a$12$company-digest",
		Modules:      model.ModulePermissions{HRM: true},
		IsActive:     true, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.CreateCompany(ctx, company); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	// GST 唯一索引
	dup := *company
	dup.ID = "com-002"
	dup.Email = "other@acme.com"
	if err := s.CreateCompany(ctx, &dup); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("duplicate GST error = %v, want ErrDuplicate", err)
	}

	got, err := s.GetCompanyByEmail(ctx, "HR@Acme.com")
	if err != nil || got == nil {
		t.Fatalf("GetCompanyByEmail = %v, %v", got, err)
	}
	if got.PasswordHash != "" {
		t.Error("company PasswordHash leaked through default read")
	}

	hash, err := s.GetCompanyPasswordHash(ctx, "com-001")
	if err != nil || hash != "$2a$12$company-digest" {
		t.Fatalf("GetCompanyPasswordHash = %q, %v", hash, err)
	}
}

func TestLeaveLifecycle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	leave := &model.Leave{
		ID: "lv-001", CompanyID: "com-001", EmployeeID: "emp-001",
		Type: model.LeaveTypeSick, FromDate: now, ToDate: now.Add(48 * time.Hour),
		Days: 3, Reason: "flu", Status: model.LeaveStatusPending,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := s.CreateLeave(ctx, leave); err != nil {
		t.Fatalf("CreateLeave: %v", err)
	}

	if err := s.SetLeaveStatus(ctx, "lv-001", model.LeaveStatusApproved, "adm-001"); err != nil {
		t.Fatalf("SetLeaveStatus: %v", err)
	}
	got, _ := s.GetLeave(ctx, "lv-001")
	if got.Status != model.LeaveStatusApproved || got.ApprovedBy != "adm-001" {
		t.Errorf("leave = %+v, want approved by adm-001", got)
	}

	pending, err := s.ListLeaves(ctx, storage.LeaveFilter{CompanyID: "com-001", Status: "pending"})
	if err != nil {
		t.Fatalf("ListLeaves: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %d, want 0", len(pending))
	}
}
