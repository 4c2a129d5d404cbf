// Package user 用户管理领域 - 用户台账与角色实体档案
package user

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"hrm-admin/internal/apiserver/auth"
	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// Store 用户管理所需的存储能力
type Store interface {
	storage.UserStore
	storage.EntityStore
}

// Handler 用户管理 HTTP 处理器
type Handler struct {
	store    Store
	resolver *auth.EntityResolver
}

// NewHandler 创建用户管理处理器
func NewHandler(store Store, resolver *auth.EntityResolver) *Handler {
	return &Handler{store: store, resolver: resolver}
}

// RegisterRoutes 注册用户管理相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/users", h.List)
	mux.HandleFunc("GET /api/v1/users/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/users/{id}", h.Update)
	mux.HandleFunc("PATCH /api/v1/users/{id}/status", h.SetStatus)
	mux.HandleFunc("DELETE /api/v1/users/{id}", h.Delete)

	mux.HandleFunc("POST /api/v1/employees", h.CreateEmployee)
	mux.HandleFunc("GET /api/v1/employees", h.ListEmployees)
	mux.HandleFunc("GET /api/v1/employees/{id}", h.GetEmployee)
	mux.HandleFunc("PUT /api/v1/employees/{id}", h.UpdateEmployee)
	mux.HandleFunc("DELETE /api/v1/employees/{id}", h.DeleteEmployee)

	mux.HandleFunc("POST /api/v1/admins", h.CreateAdmin)
	mux.HandleFunc("GET /api/v1/admins", h.ListAdmins)
	mux.HandleFunc("DELETE /api/v1/admins/{id}", h.DeleteAdmin)
}

// scopedCompanyID 解析生效的公司范围
// super_admin 可通过查询参数指定公司，其他主体固定在自己的租户
func scopedCompanyID(r *http.Request) string {
	if cid := auth.GetCompanyID(r.Context()); cid != "" {
		return cid
	}
	return r.URL.Query().Get("company_id")
}

// ============================================================================
// 用户台账
// ============================================================================

// List 用户列表：正则搜索 + 类型/状态过滤
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.UserFilter{
		CompanyID: scopedCompanyID(r),
		Search:    q.Get("search"),
		UserType:  q.Get("user_type"),
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	users, err := h.store.ListUsers(r.Context(), filter)
	if err != nil {
		log.Printf("[user] ListUsers error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// Get 用户详情（含角色实体档案）
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		log.Printf("[user] GetUserByID error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	entity, err := h.resolver.ResolveEntity(r.Context(), user)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[user] ResolveEntity error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve entity")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":   user,
		"entity": entity,
	})
}

// Update 更新用户档案
// 白名单字段更新：密码与登录时间不从这里写入
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	var req struct {
		Username    *string   `json:"username,omitempty"`
		FirstName   *string   `json:"first_name,omitempty"`
		LastName    *string   `json:"last_name,omitempty"`
		Mobile      *string   `json:"mobile,omitempty"`
		ProfilePic  *string   `json:"profile_pic,omitempty"`
		RoleID      *string   `json:"role_id,omitempty"`
		Permissions *[]string `json:"permissions,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	if req.ProfilePic != nil {
		user.ProfilePic = *req.ProfilePic
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.Permissions != nil {
		user.Permissions = *req.Permissions
	}
	user.UpdatedAt = time.Now()

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			writeError(w, http.StatusConflict, "username already taken")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			log.Printf("[user] UpdateUser error: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	log.Printf("[user] User updated: %s", id)
	writeJSON(w, http.StatusOK, user)
}

// SetStatus 启用/停用用户
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	if err := h.store.UpdateUserActive(r.Context(), id, *req.IsActive); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("[user] UpdateUserActive error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update user status")
		return
	}

	log.Printf("[user] User %s active=%v", id, *req.IsActive)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "status updated"})
}

// Delete 删除用户
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("[user] DeleteUser error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	log.Printf("[user] User deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "user deleted"})
}

// ============================================================================
// 员工档案
// ============================================================================

// CreateEmployee 创建员工档案
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmpCode     string     `json:"emp_code"`
		FirstName   string     `json:"first_name"`
		LastName    string     `json:"last_name"`
		Email       string     `json:"email"`
		Mobile      string     `json:"mobile"`
		Department  string     `json:"department"`
		Designation string     `json:"designation"`
		Shift       string     `json:"shift"`
		JoiningDate *time.Time `json:"joining_date"`
		CompanyID   string     `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmpCode == "" || req.FirstName == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "emp_code, first_name, email are required")
		return
	}

	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = req.CompanyID
	}

	now := time.Now()
	emp := &model.Employee{
		ID:          generateID("emp"),
		CompanyID:   companyID,
		EmpCode:     req.EmpCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       model.NormalizeEmail(req.Email),
		Mobile:      req.Mobile,
		Department:  req.Department,
		Designation: req.Designation,
		Shift:       req.Shift,
		JoiningDate: req.JoiningDate,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateEmployee(r.Context(), emp); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "emp_code already exists")
			return
		}
		log.Printf("[user] CreateEmployee error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create employee")
		return
	}

	log.Printf("[user] Employee created: %s (%s)", emp.EmpCode, emp.ID)
	writeJSON(w, http.StatusCreated, emp)
}

// ListEmployees 员工列表，支持按部门过滤
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	companyID := scopedCompanyID(r)

	var (
		employees []*model.Employee
		err       error
	)
	if dept := r.URL.Query().Get("department"); dept != "" {
		employees, err = h.store.ListEmployeesByDepartment(r.Context(), companyID, dept)
	} else {
		employees, err = h.store.ListEmployees(r.Context(), companyID)
	}
	if err != nil {
		log.Printf("[user] ListEmployees error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

// GetEmployee 员工档案详情
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	emp, err := h.store.GetEmployee(r.Context(), id)
	if err != nil {
		log.Printf("[user] GetEmployee error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get employee")
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}

	writeJSON(w, http.StatusOK, emp)
}

// UpdateEmployee 更新员工档案
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	emp, err := h.store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get employee")
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}

	var req struct {
		FirstName   *string `json:"first_name,omitempty"`
		LastName    *string `json:"last_name,omitempty"`
		Mobile      *string `json:"mobile,omitempty"`
		Department  *string `json:"department,omitempty"`
		Designation *string `json:"designation,omitempty"`
		Shift       *string `json:"shift,omitempty"`
		IsActive    *bool   `json:"is_active,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Mobile != nil {
		emp.Mobile = *req.Mobile
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}
	if req.Shift != nil {
		emp.Shift = *req.Shift
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	emp.UpdatedAt = time.Now()

	if err := h.store.UpdateEmployee(r.Context(), emp); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		log.Printf("[user] UpdateEmployee error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update employee")
		return
	}

	log.Printf("[user] Employee updated: %s", id)
	writeJSON(w, http.StatusOK, emp)
}

// DeleteEmployee 删除员工档案
// 不级联删除用户：User.EntityID 悬空是允许的状态
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		log.Printf("[user] DeleteEmployee error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete employee")
		return
	}

	log.Printf("[user] Employee deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "employee deleted"})
}

// ============================================================================
// 管理员档案
// ============================================================================

// CreateAdmin 创建管理员档案
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string   `json:"username"`
		FirstName   string   `json:"first_name"`
		LastName    string   `json:"last_name"`
		Email       string   `json:"email"`
		Mobile      string   `json:"mobile"`
		Permissions []string `json:"permissions"`
		CompanyID   string   `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "username and email are required")
		return
	}

	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = req.CompanyID
	}

	now := time.Now()
	admin := &model.Admin{
		ID:          generateID("adm"),
		CompanyID:   companyID,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       model.NormalizeEmail(req.Email),
		Mobile:      req.Mobile,
		Permissions: req.Permissions,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateAdmin(r.Context(), admin); err != nil {
		log.Printf("[user] CreateAdmin error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create admin")
		return
	}

	log.Printf("[user] Admin created: %s (%s)", admin.Username, admin.ID)
	writeJSON(w, http.StatusCreated, admin)
}

// ListAdmins 管理员列表
func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.store.ListAdmins(r.Context(), scopedCompanyID(r))
	if err != nil {
		log.Printf("[user] ListAdmins error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list admins")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"admins": admins})
}

// DeleteAdmin 删除管理员档案
func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteAdmin(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "admin not found")
			return
		}
		log.Printf("[user] DeleteAdmin error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete admin")
		return
	}

	log.Printf("[user] Admin deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "admin deleted"})
}

// ============================================================================
// 工具函数
// ============================================================================

func generateID(prefix string) string {
	b := make([]byte, 6)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
