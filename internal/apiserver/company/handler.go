// Package company 公司领域 - 注册/登录与档案管理
package company

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"hrm-admin/internal/apiserver/auth"
	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// Handler 公司领域 HTTP 处理器
type Handler struct {
	store   storage.CompanyStore
	auth    *auth.Authenticator
	cfg     auth.Config
	metrics auth.Metrics
}

// NewHandler 创建公司处理器
func NewHandler(store storage.CompanyStore, authn *auth.Authenticator, cfg auth.Config) *Handler {
	return &Handler{store: store, auth: authn, cfg: cfg}
}

// SetMetrics 注入指标实例
func (h *Handler) SetMetrics(m auth.Metrics) {
	h.metrics = m
}

func (h *Handler) recordLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLoginAttempt("company", outcome)
	}
}

// RegisterRoutes 注册公司相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/companies/register", h.Register)
	mux.HandleFunc("POST /api/v1/companies/login", h.Login)
	mux.HandleFunc("GET /api/v1/companies", h.List)
	mux.HandleFunc("GET /api/v1/companies/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/companies/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/companies/{id}", h.Delete)
}

// ============================================================================
// 请求/响应类型
// ============================================================================

type registerRequest struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	GSTNumber   string `json:"gst_number"`
	CompanyImg  string `json:"company_img"`

	Modules model.ModulePermissions `json:"modules"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Company *model.Company `json:"company"`
	Token   string         `json:"token"`
}

// ============================================================================
// Handlers
// ============================================================================

// Register 公司注册
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CompanyName == "" || req.Email == "" || req.Password == "" || req.GSTNumber == "" {
		writeError(w, http.StatusBadRequest, "company_name, email, password, gst_number are required")
		return
	}
	if !isValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("[company.register] HashPassword error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := time.Now()
	company := &model.Company{
		ID:           generateID("com"),
		CompanyName:  req.CompanyName,
		Email:        model.NormalizeEmail(req.Email),
		Phone:        req.Phone,
		Address:      req.Address,
		GSTNumber:    strings.ToUpper(strings.TrimSpace(req.GSTNumber)),
		CompanyImg:   req.CompanyImg,
		PasswordHash: hash,
		Modules:      req.Modules,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.CreateCompany(r.Context(), company); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "email or gst_number already registered")
			return
		}
		log.Printf("[company.register] CreateCompany error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create company")
		return
	}

	company.PasswordHash = ""
	log.Printf("[company] Company registered: %s (%s)", company.CompanyName, company.ID)
	writeJSON(w, http.StatusCreated, company)
}

// Login 公司登录
//
// 与用户登录互不回退：只查公司集合。
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	company, err := h.auth.AuthenticateCompany(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.recordLogin("invalid_credentials")
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, auth.ErrAccountDisabled):
			h.recordLogin("disabled")
			writeError(w, http.StatusForbidden, "company account is disabled")
		case errors.Is(err, auth.ErrStoreUnavailable):
			h.recordLogin("unavailable")
			log.Printf("[company.login] store unavailable: %v", err)
			writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
		default:
			h.recordLogin("error")
			log.Printf("[company.login] error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	h.recordLogin("success")

	token, err := auth.GenerateToken(h.cfg, company.ID, company.Email, auth.PrincipalCompany, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("[company] Company logged in: %s", company.Email)
	writeJSON(w, http.StatusOK, loginResponse{Company: company, Token: token})
}

// List 获取公司列表（super_admin 视角）
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.ListCompanies(r.Context())
	if err != nil {
		log.Printf("[company] ListCompanies error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
}

// Get 获取公司详情
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	company, err := h.store.GetCompanyByID(r.Context(), id)
	if err != nil {
		log.Printf("[company] GetCompanyByID error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get company")
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}

	writeJSON(w, http.StatusOK, company)
}

// Update 更新公司档案
// 密码不走这里：档案更新的字段白名单不含 password_hash
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	company, err := h.store.GetCompanyByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get company")
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}

	var req struct {
		CompanyName *string                  `json:"company_name,omitempty"`
		Phone       *string                  `json:"phone,omitempty"`
		Address     *string                  `json:"address,omitempty"`
		CompanyImg  *string                  `json:"company_img,omitempty"`
		Modules     *model.ModulePermissions `json:"modules,omitempty"`
		IsActive    *bool                    `json:"is_active,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CompanyName != nil {
		company.CompanyName = *req.CompanyName
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.CompanyImg != nil {
		company.CompanyImg = *req.CompanyImg
	}
	if req.Modules != nil {
		company.Modules = *req.Modules
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.UpdatedAt = time.Now()

	if err := h.store.UpdateCompany(r.Context(), company); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		log.Printf("[company] UpdateCompany error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update company")
		return
	}

	log.Printf("[company] Company updated: %s", id)
	writeJSON(w, http.StatusOK, company)
}

// Delete 删除公司
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteCompany(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		log.Printf("[company] DeleteCompany error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete company")
		return
	}

	log.Printf("[company] Company deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "company deleted"})
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

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
