// Package shift 班次领域 - 工作时段管理
package shift

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"hrm-admin/internal/apiserver/auth"
	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// Handler 班次领域 HTTP 处理器
type Handler struct {
	store storage.ShiftStore
}

// NewHandler 创建班次处理器
func NewHandler(store storage.ShiftStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册班次相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/shifts", h.Create)
	mux.HandleFunc("GET /api/v1/shifts", h.List)
	mux.HandleFunc("GET /api/v1/shifts/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/shifts/{id}", h.Update)
	mux.HandleFunc("PATCH /api/v1/shifts/{id}/status", h.SetStatus)
	mux.HandleFunc("DELETE /api/v1/shifts/{id}", h.Delete)
}

// Create 创建班次
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		WeekOff   string `json:"week_off"`
		CompanyID string `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.StartTime == "" || req.EndTime == "" {
		writeError(w, http.StatusBadRequest, "name, start_time, end_time are required")
		return
	}
	if !isValidClock(req.StartTime) || !isValidClock(req.EndTime) {
		writeError(w, http.StatusBadRequest, "start_time and end_time must be HH:MM")
		return
	}

	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = req.CompanyID
	}

	now := time.Now()
	shift := &model.Shift{
		ID:        generateID("shift"),
		CompanyID: companyID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		WeekOff:   req.WeekOff,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.CreateShift(r.Context(), shift); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "shift name already exists")
			return
		}
		log.Printf("[shift] CreateShift error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create shift")
		return
	}

	log.Printf("[shift] Shift created: %s (%s)", shift.Name, shift.ID)
	writeJSON(w, http.StatusCreated, shift)
}

// List 班次列表，?active=true 只返回启用项
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = r.URL.Query().Get("company_id")
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	shifts, err := h.store.ListShifts(r.Context(), companyID, activeOnly)
	if err != nil {
		log.Printf("[shift] ListShifts error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list shifts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"shifts": shifts})
}

// Get 班次详情
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	shift, err := h.store.GetShift(r.Context(), id)
	if err != nil {
		log.Printf("[shift] GetShift error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get shift")
		return
	}
	if shift == nil {
		writeError(w, http.StatusNotFound, "shift not found")
		return
	}

	writeJSON(w, http.StatusOK, shift)
}

// Update 更新班次
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	shift, err := h.store.GetShift(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get shift")
		return
	}
	if shift == nil {
		writeError(w, http.StatusNotFound, "shift not found")
		return
	}

	var req struct {
		Name      *string `json:"name,omitempty"`
		StartTime *string `json:"start_time,omitempty"`
		EndTime   *string `json:"end_time,omitempty"`
		WeekOff   *string `json:"week_off,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.StartTime != nil && !isValidClock(*req.StartTime) {
		writeError(w, http.StatusBadRequest, "start_time must be HH:MM")
		return
	}
	if req.EndTime != nil && !isValidClock(*req.EndTime) {
		writeError(w, http.StatusBadRequest, "end_time must be HH:MM")
		return
	}

	if req.Name != nil {
		shift.Name = *req.Name
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.WeekOff != nil {
		shift.WeekOff = *req.WeekOff
	}
	shift.UpdatedAt = time.Now()

	if err := h.store.UpdateShift(r.Context(), shift); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			writeError(w, http.StatusConflict, "shift name already exists")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "shift not found")
		default:
			log.Printf("[shift] UpdateShift error: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update shift")
		}
		return
	}

	log.Printf("[shift] Shift updated: %s", id)
	writeJSON(w, http.StatusOK, shift)
}

// SetStatus 启用/停用班次
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	if err := h.store.SetShiftActive(r.Context(), id, *req.IsActive); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shift not found")
			return
		}
		log.Printf("[shift] SetShiftActive error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update shift status")
		return
	}

	log.Printf("[shift] Shift %s active=%v", id, *req.IsActive)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "status updated"})
}

// Delete 删除班次
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteShift(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shift not found")
			return
		}
		log.Printf("[shift] DeleteShift error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete shift")
		return
	}

	log.Printf("[shift] Shift deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "shift deleted"})
}

// ============================================================================
// 工具函数
// ============================================================================

// clockRegex 24 小时制 HH:MM
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func isValidClock(s string) bool {
	return clockRegex.MatchString(s)
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
