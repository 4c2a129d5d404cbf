// Package org 组织结构领域 - 部门与职位字典
package org

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

// Handler 组织结构 HTTP 处理器
type Handler struct {
	store storage.OrgStore
}

// NewHandler 创建组织结构处理器
func NewHandler(store storage.OrgStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册部门/职位相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/departments", h.CreateDepartment)
	mux.HandleFunc("GET /api/v1/departments", h.ListDepartments)
	mux.HandleFunc("GET /api/v1/departments/{id}", h.GetDepartment)
	mux.HandleFunc("PUT /api/v1/departments/{id}", h.UpdateDepartment)
	mux.HandleFunc("PATCH /api/v1/departments/{id}/status", h.SetDepartmentStatus)
	mux.HandleFunc("DELETE /api/v1/departments/{id}", h.DeleteDepartment)

	mux.HandleFunc("POST /api/v1/designations", h.CreateDesignation)
	mux.HandleFunc("GET /api/v1/designations", h.ListDesignations)
	mux.HandleFunc("GET /api/v1/designations/{id}", h.GetDesignation)
	mux.HandleFunc("PUT /api/v1/designations/{id}", h.UpdateDesignation)
	mux.HandleFunc("PATCH /api/v1/designations/{id}/status", h.SetDesignationStatus)
	mux.HandleFunc("DELETE /api/v1/designations/{id}", h.DeleteDesignation)
}

// scopedCompanyID 解析生效的公司范围
func scopedCompanyID(r *http.Request) string {
	if cid := auth.GetCompanyID(r.Context()); cid != "" {
		return cid
	}
	return r.URL.Query().Get("company_id")
}

// ============================================================================
// 部门
// ============================================================================

// CreateDepartment 创建部门
func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		CompanyID   string `json:"company_id"`
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
	dept := &model.Department{
		ID:          generateID("dept"),
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateDepartment(r.Context(), dept); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "department name already exists")
			return
		}
		log.Printf("[org] CreateDepartment error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create department")
		return
	}

	log.Printf("[org] Department created: %s (%s)", dept.Name, dept.ID)
	writeJSON(w, http.StatusCreated, dept)
}

// ListDepartments 部门列表，?active=true 只返回启用项
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	departments, err := h.store.ListDepartments(r.Context(), scopedCompanyID(r), activeOnly)
	if err != nil {
		log.Printf("[org] ListDepartments error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list departments")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"departments": departments})
}

// GetDepartment 部门详情
func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	dept, err := h.store.GetDepartment(r.Context(), id)
	if err != nil {
		log.Printf("[org] GetDepartment error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get department")
		return
	}
	if dept == nil {
		writeError(w, http.StatusNotFound, "department not found")
		return
	}

	writeJSON(w, http.StatusOK, dept)
}

// UpdateDepartment 更新部门
func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	dept, err := h.store.GetDepartment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get department")
		return
	}
	if dept == nil {
		writeError(w, http.StatusNotFound, "department not found")
		return
	}

	var req struct {
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	dept.UpdatedAt = time.Now()

	if err := h.store.UpdateDepartment(r.Context(), dept); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			writeError(w, http.StatusConflict, "department name already exists")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "department not found")
		default:
			log.Printf("[org] UpdateDepartment error: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update department")
		}
		return
	}

	log.Printf("[org] Department updated: %s", id)
	writeJSON(w, http.StatusOK, dept)
}

// SetDepartmentStatus 启用/停用部门
func (h *Handler) SetDepartmentStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	if err := h.store.SetDepartmentActive(r.Context(), id, *req.IsActive); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "department not found")
			return
		}
		log.Printf("[org] SetDepartmentActive error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update department status")
		return
	}

	log.Printf("[org] Department %s active=%v", id, *req.IsActive)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "status updated"})
}

// DeleteDepartment 删除部门
func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteDepartment(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "department not found")
			return
		}
		log.Printf("[org] DeleteDepartment error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete department")
		return
	}

	log.Printf("[org] Department deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "department deleted"})
}

// ============================================================================
// 职位
// ============================================================================

// CreateDesignation 创建职位
func (h *Handler) CreateDesignation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Department string `json:"department"`
		CompanyID  string `json:"company_id"`
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
	desig := &model.Designation{
		ID:         generateID("desig"),
		CompanyID:  companyID,
		Name:       req.Name,
		Department: req.Department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.store.CreateDesignation(r.Context(), desig); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "designation name already exists")
			return
		}
		log.Printf("[org] CreateDesignation error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create designation")
		return
	}

	log.Printf("[org] Designation created: %s (%s)", desig.Name, desig.ID)
	writeJSON(w, http.StatusCreated, desig)
}

// ListDesignations 职位列表，?active=true 只返回启用项
func (h *Handler) ListDesignations(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	designations, err := h.store.ListDesignations(r.Context(), scopedCompanyID(r), activeOnly)
	if err != nil {
		log.Printf("[org] ListDesignations error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list designations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"designations": designations})
}

// GetDesignation 职位详情
func (h *Handler) GetDesignation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	desig, err := h.store.GetDesignation(r.Context(), id)
	if err != nil {
		log.Printf("[org] GetDesignation error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get designation")
		return
	}
	if desig == nil {
		writeError(w, http.StatusNotFound, "designation not found")
		return
	}

	writeJSON(w, http.StatusOK, desig)
}

// UpdateDesignation 更新职位
func (h *Handler) UpdateDesignation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	desig, err := h.store.GetDesignation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get designation")
		return
	}
	if desig == nil {
		writeError(w, http.StatusNotFound, "designation not found")
		return
	}

	var req struct {
		Name       *string `json:"name,omitempty"`
		Department *string `json:"department,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil {
		desig.Name = *req.Name
	}
	if req.Department != nil {
		desig.Department = *req.Department
	}
	desig.UpdatedAt = time.Now()

	if err := h.store.UpdateDesignation(r.Context(), desig); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			writeError(w, http.StatusConflict, "designation name already exists")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "designation not found")
		default:
			log.Printf("[org] UpdateDesignation error: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update designation")
		}
		return
	}

	log.Printf("[org] Designation updated: %s", id)
	writeJSON(w, http.StatusOK, desig)
}

// SetDesignationStatus 启用/停用职位
func (h *Handler) SetDesignationStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	if err := h.store.SetDesignationActive(r.Context(), id, *req.IsActive); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "designation not found")
			return
		}
		log.Printf("[org] SetDesignationActive error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update designation status")
		return
	}

	log.Printf("[org] Designation %s active=%v", id, *req.IsActive)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "status updated"})
}

// DeleteDesignation 删除职位
func (h *Handler) DeleteDesignation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteDesignation(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "designation not found")
			return
		}
		log.Printf("[org] DeleteDesignation error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete designation")
		return
	}

	log.Printf("[org] Designation deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "designation deleted"})
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
