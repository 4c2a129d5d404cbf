// Package role 角色领域 - 权限矩阵管理
package role

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

// Handler 角色领域 HTTP 处理器
type Handler struct {
	store storage.RoleStore
}

// NewHandler 创建角色处理器
func NewHandler(store storage.RoleStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册角色相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/roles", h.Create)
	mux.HandleFunc("GET /api/v1/roles", h.List)
	mux.HandleFunc("GET /api/v1/roles/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/roles/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/roles/{id}", h.Delete)
}

// Create 创建角色
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string                   `json:"name"`
		Permissions []model.ModulePermission `json:"permissions"`
		CompanyID   string                   `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = req.CompanyID
	}

	now := time.Now()
	role := &model.Role{
		ID:          generateID("role"),
		CompanyID:   companyID,
		Name:        req.Name,
		Status:      model.RoleStatusActive,
		Permissions: req.Permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateRole(r.Context(), role); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "role name already exists")
			return
		}
		log.Printf("[role] CreateRole error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create role")
		return
	}

	log.Printf("[role] Role created: %s (%s)", role.Name, role.ID)
	writeJSON(w, http.StatusCreated, role)
}

// List 角色列表
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = r.URL.Query().Get("company_id")
	}

	roles, err := h.store.ListRoles(r.Context(), companyID)
	if err != nil {
		log.Printf("[role] ListRoles error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list roles")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"roles": roles})
}

// Get 角色详情
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	role, err := h.store.GetRole(r.Context(), id)
	if err != nil {
		log.Printf("[role] GetRole error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get role")
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "role not found")
		return
	}

	writeJSON(w, http.StatusOK, role)
}

// Update 更新角色
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	role, err := h.store.GetRole(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get role")
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "role not found")
		return
	}

	var req struct {
		Name        *string                   `json:"name,omitempty"`
		Status      *string                   `json:"status,omitempty"`
		Permissions *[]model.ModulePermission `json:"permissions,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Status != nil {
		role.Status = model.RoleStatus(*req.Status)
	}
	if req.Permissions != nil {
		role.Permissions = *req.Permissions
	}
	role.UpdatedAt = time.Now()

	if err := h.store.UpdateRole(r.Context(), role); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			writeError(w, http.StatusConflict, "role name already exists")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "role not found")
		default:
			log.Printf("[role] UpdateRole error: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update role")
		}
		return
	}

	log.Printf("[role] Role updated: %s", id)
	writeJSON(w, http.StatusOK, role)
}

// Delete 删除角色
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteRole(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "role not found")
			return
		}
		log.Printf("[role] DeleteRole error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete role")
		return
	}

	log.Printf("[role] Role deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "role deleted"})
}

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
