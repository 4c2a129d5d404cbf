package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"hrm-admin/internal/shared/cache"
	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// Metrics 登录指标钩子（由 server 包注入，可为空）
type Metrics interface {
	RecordLoginAttempt(principal, outcome string)
	RecordTokenRevoked()
}

// Handler 认证 HTTP 处理器
type Handler struct {
	store     storage.UserStore
	auth      *Authenticator
	resolver  *EntityResolver
	blacklist cache.TokenBlacklist
	cfg       Config
	metrics   Metrics
}

// NewHandler 创建认证处理器
func NewHandler(store storage.UserStore, auth *Authenticator, resolver *EntityResolver, blacklist cache.TokenBlacklist, cfg Config) *Handler {
	if blacklist == nil {
		blacklist = cache.NewNoOpCache()
	}
	return &Handler{store: store, auth: auth, resolver: resolver, blacklist: blacklist, cfg: cfg}
}

// SetMetrics 注入指标实例
func (h *Handler) SetMetrics(m Metrics) {
	h.metrics = m
}

func (h *Handler) recordLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLoginAttempt("user", outcome)
	}
}

// RegisterRoutes 注册认证相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/v1/auth/me", h.Me)
	mux.HandleFunc("PUT /api/v1/auth/profile", h.UpdateProfile)
	mux.HandleFunc("PUT /api/v1/auth/password", h.ChangePassword)
}

// ============================================================================
// 请求/响应类型
// ============================================================================

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
	UserType  string `json:"user_type"`
	EntityID  string `json:"entity_id"`
	CompanyID string `json:"company_id"`
	RoleID    string `json:"role_id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Mobile     string `json:"mobile"`
	ProfilePic string `json:"profile_pic"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type authResponse struct {
	User   *model.User      `json:"user"`
	Entity model.RoleEntity `json:"entity,omitempty"`
	Token  string           `json:"token"`
}

// ============================================================================
// Handlers
// ============================================================================

// Register 用户注册
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email, username, password are required")
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
	userType := model.UserType(req.UserType)
	if req.UserType == "" {
		userType = model.UserTypeEmployee
	}
	if !userType.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid user_type %q", req.UserType))
		return
	}

	// 哈希只在设置密码的调用点发生
	hash, err := HashPassword(req.Password)
	if err != nil {
		log.Printf("[auth.register] HashPassword error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := time.Now()
	user := &model.User{
		ID:           generateID(),
		Email:        model.NormalizeEmail(req.Email),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		UserType:     userType,
		EntityID:     req.EntityID,
		CompanyID:    req.CompanyID,
		RoleID:       req.RoleID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "email or username already registered")
			return
		}
		log.Printf("[auth.register] CreateUser error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := GenerateToken(h.cfg, user.ID, user.Email, string(user.UserType), user.CompanyID)
	if err != nil {
		log.Printf("[auth.register] GenerateToken error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("[auth] User registered: %s (%s)", user.Email, user.ID)
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login 用户登录
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

	user, entity, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.recordLogin("invalid_credentials")
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, ErrAccountDisabled):
			h.recordLogin("disabled")
			writeError(w, http.StatusForbidden, "account is disabled")
		case errors.Is(err, ErrStoreUnavailable):
			h.recordLogin("unavailable")
			log.Printf("[auth.login] store unavailable: %v", err)
			writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
		default:
			h.recordLogin("error")
			log.Printf("[auth.login] error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	h.recordLogin("success")

	token, err := GenerateToken(h.cfg, user.ID, user.Email, string(user.UserType), user.CompanyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("[auth] User logged in: %s", user.Email)
	writeJSON(w, http.StatusOK, authResponse{User: user, Entity: entity, Token: token})
}

// Logout 登出：把当前令牌的 JTI 加入失效名单
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := bearerClaims(h.cfg, r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.blacklist.RevokeToken(r.Context(), claims.ID, ttl); err != nil {
		log.Printf("[auth.logout] RevokeToken error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to revoke token")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTokenRevoked()
	}
	log.Printf("[auth] User logged out: %s", claims.Subject)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me 获取当前用户信息（含角色实体档案）
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	authUser := GetAuthUser(r.Context())
	if authUser == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), authUser.ID)
	if err != nil {
		log.Printf("[auth.me] GetUserByID error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	entity, err := h.resolver.ResolveEntity(r.Context(), user)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[auth.me] ResolveEntity error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":   user,
		"entity": entity,
	})
}

// UpdateProfile 更新当前用户档案
// 只接受档案字段：密码与登录时间有各自的专用写路径
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	authUser := GetAuthUser(r.Context())
	if authUser == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), authUser.ID)
	if err != nil || user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Mobile != "" {
		user.Mobile = req.Mobile
	}
	if req.ProfilePic != "" {
		user.ProfilePic = req.ProfilePic
	}

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}
		log.Printf("[auth.profile] UpdateUser error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	authUser := GetAuthUser(r.Context())
	if authUser == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "old_password and new_password are required")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}

	hash, err := h.store.GetUserPasswordHash(r.Context(), authUser.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("[auth.password] GetUserPasswordHash error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !CheckPassword(req.OldPassword, hash) {
		writeError(w, http.StatusUnauthorized, "incorrect old password")
		return
	}

	newHash, err := HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.store.UpdateUserPassword(r.Context(), authUser.ID, newHash); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// ============================================================================
// SuperAdmin Bootstrap
// ============================================================================

// EnsureSuperAdmin 确保超级管理员存在（启动时调用）
// 如果配置了 adminEmail 且数据库中不存在该用户，则自动创建
func EnsureSuperAdmin(store storage.UserStore, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	ctx := context.Background()
	existing, err := store.GetUserByEmail(ctx, model.NormalizeEmail(adminEmail))
	if err != nil {
		return fmt.Errorf("check super admin: %w", err)
	}
	if existing != nil {
		log.Printf("[auth] Super admin already exists: %s (%s)", adminEmail, existing.ID)
		return nil
	}

	hash, err := HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           generateID(),
		Email:        model.NormalizeEmail(adminEmail),
		Username:     "superadmin",
		PasswordHash: hash,
		UserType:     model.UserTypeSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}
	log.Printf("[auth] Created super admin: %s (%s)", adminEmail, user.ID)
	return nil
}

// ============================================================================
// 工具函数
// ============================================================================

// bearerClaims 从 Authorization 头解析令牌声明，失败返回 nil
func bearerClaims(cfg Config, r *http.Request) *Claims {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}
	claims, err := ParseToken(cfg, parts[1])
	if err != nil {
		return nil
	}
	return claims
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

func generateID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return "usr-" + hex.EncodeToString(b)
}
