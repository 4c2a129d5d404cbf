// Package holiday 节假日领域
package holiday

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

// Handler 节假日 HTTP 处理器
type Handler struct {
	store storage.HolidayStore
}

// NewHandler 创建节假日处理器
func NewHandler(store storage.HolidayStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册节假日相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/holidays", h.Create)
	mux.HandleFunc("GET /api/v1/holidays", h.List)
	mux.HandleFunc("GET /api/v1/holidays/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/holidays/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/holidays/{id}", h.Delete)
}

// Create 创建节假日
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string    `json:"name"`
		Date        time.Time `json:"date"`
		Description string    `json:"description"`
		CompanyID   string    `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "name and date are required")
		return
	}

	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = req.CompanyID
	}

	now := time.Now()
	holiday := &model.Holiday{
		ID:          generateID("hol"),
		CompanyID:   companyID,
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		Status:      model.HolidayStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateHoliday(r.Context(), holiday); err != nil {
		log.Printf("[holiday] CreateHoliday error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create holiday")
		return
	}

	log.Printf("[holiday] Holiday created: %s (%s)", holiday.Name, holiday.ID)
	writeJSON(w, http.StatusCreated, holiday)
}

// List 节假日列表（按日期升序）
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = r.URL.Query().Get("company_id")
	}

	holidays, err := h.store.ListHolidays(r.Context(), companyID)
	if err != nil {
		log.Printf("[holiday] ListHolidays error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list holidays")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"holidays": holidays})
}

// Get 节假日详情
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	holiday, err := h.store.GetHoliday(r.Context(), id)
	if err != nil {
		log.Printf("[holiday] GetHoliday error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get holiday")
		return
	}
	if holiday == nil {
		writeError(w, http.StatusNotFound, "holiday not found")
		return
	}

	writeJSON(w, http.StatusOK, holiday)
}

// Update 更新节假日
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	holiday, err := h.store.GetHoliday(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get holiday")
		return
	}
	if holiday == nil {
		writeError(w, http.StatusNotFound, "holiday not found")
		return
	}

	var req struct {
		Name        *string    `json:"name,omitempty"`
		Date        *time.Time `json:"date,omitempty"`
		Description *string    `json:"description,omitempty"`
		Status      *string    `json:"status,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil {
		holiday.Name = *req.Name
	}
	if req.Date != nil {
		holiday.Date = *req.Date
	}
	if req.Description != nil {
		holiday.Description = *req.Description
	}
	if req.Status != nil {
		holiday.Status = model.HolidayStatus(*req.Status)
	}
	holiday.UpdatedAt = time.Now()

	if err := h.store.UpdateHoliday(r.Context(), holiday); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "holiday not found")
			return
		}
		log.Printf("[holiday] UpdateHoliday error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update holiday")
		return
	}

	log.Printf("[holiday] Holiday updated: %s", id)
	writeJSON(w, http.StatusOK, holiday)
}

// Delete 删除节假日
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteHoliday(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "holiday not found")
			return
		}
		log.Printf("[holiday] DeleteHoliday error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete holiday")
		return
	}

	log.Printf("[holiday] Holiday deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "holiday deleted"})
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
