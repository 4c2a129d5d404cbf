// Package leave 请假领域 - 请假单与审批流转
package leave

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"hrm-admin/internal/apiserver/auth"
	"hrm-admin/internal/shared/model"
	"hrm-admin/internal/shared/storage"
)

// Handler 请假领域 HTTP 处理器
type Handler struct {
	store storage.LeaveStore
}

// NewHandler 创建请假处理器
func NewHandler(store storage.LeaveStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册请假相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/leaves", h.Create)
	mux.HandleFunc("GET /api/v1/leaves", h.List)
	mux.HandleFunc("GET /api/v1/leaves/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/leaves/{id}", h.Update)
	mux.HandleFunc("PATCH /api/v1/leaves/{id}/status", h.SetStatus)
	mux.HandleFunc("DELETE /api/v1/leaves/{id}", h.Delete)
}

// Create 提交请假单
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string    `json:"employee_id"`
		Type       string    `json:"type"`
		FromDate   time.Time `json:"from_date"`
		ToDate     time.Time `json:"to_date"`
		Days       int       `json:"days"`
		Reason     string    `json:"reason"`
		CompanyID  string    `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID == "" || req.Type == "" || req.FromDate.IsZero() || req.ToDate.IsZero() {
		writeError(w, http.StatusBadRequest, "employee_id, type, from_date, to_date are required")
		return
	}
	leaveType := model.LeaveType(req.Type)
	if !leaveType.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid leave type %q", req.Type))
		return
	}
	if req.ToDate.Before(req.FromDate) {
		writeError(w, http.StatusBadRequest, "to_date must not be before from_date")
		return
	}

	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = req.CompanyID
	}

	days := req.Days
	if days <= 0 {
		days = model.DaysInclusive(req.FromDate, req.ToDate)
	}

	now := time.Now()
	leave := &model.Leave{
		ID:         generateID("lv"),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Type:       leaveType,
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
		Days:       days,
		Reason:     req.Reason,
		Status:     model.LeaveStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.store.CreateLeave(r.Context(), leave); err != nil {
		log.Printf("[leave] CreateLeave error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create leave")
		return
	}

	log.Printf("[leave] Leave created: %s (%s, %d days)", leave.ID, leave.Type, leave.Days)
	writeJSON(w, http.StatusCreated, leave)
}

// List 请假单列表，支持按员工与状态过滤
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = r.URL.Query().Get("company_id")
	}

	filter := storage.LeaveFilter{
		CompanyID:  companyID,
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
	}

	leaves, err := h.store.ListLeaves(r.Context(), filter)
	if err != nil {
		log.Printf("[leave] ListLeaves error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list leaves")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"leaves": leaves})
}

// Get 请假单详情
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	leave, err := h.store.GetLeave(r.Context(), id)
	if err != nil {
		log.Printf("[leave] GetLeave error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get leave")
		return
	}
	if leave == nil {
		writeError(w, http.StatusNotFound, "leave not found")
		return
	}

	writeJSON(w, http.StatusOK, leave)
}

// Update 修改请假单
// 只允许修改待审批的单据
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	leave, err := h.store.GetLeave(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get leave")
		return
	}
	if leave == nil {
		writeError(w, http.StatusNotFound, "leave not found")
		return
	}
	if leave.Status != model.LeaveStatusPending {
		writeError(w, http.StatusConflict, "only pending leaves can be modified")
		return
	}

	var req struct {
		Type     *string    `json:"type,omitempty"`
		FromDate *time.Time `json:"from_date,omitempty"`
		ToDate   *time.Time `json:"to_date,omitempty"`
		Days     *int       `json:"days,omitempty"`
		Reason   *string    `json:"reason,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Type != nil {
		leaveType := model.LeaveType(*req.Type)
		if !leaveType.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid leave type %q", *req.Type))
			return
		}
		leave.Type = leaveType
	}
	if req.FromDate != nil {
		leave.FromDate = *req.FromDate
	}
	if req.ToDate != nil {
		leave.ToDate = *req.ToDate
	}
	if leave.ToDate.Before(leave.FromDate) {
		writeError(w, http.StatusBadRequest, "to_date must not be before from_date")
		return
	}
	if req.Days != nil && *req.Days > 0 {
		leave.Days = *req.Days
	} else if req.FromDate != nil || req.ToDate != nil {
		leave.Days = model.DaysInclusive(leave.FromDate, leave.ToDate)
	}
	if req.Reason != nil {
		leave.Reason = *req.Reason
	}
	leave.UpdatedAt = time.Now()

	if err := h.store.UpdateLeave(r.Context(), leave); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "leave not found")
			return
		}
		log.Printf("[leave] UpdateLeave error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update leave")
		return
	}

	log.Printf("[leave] Leave updated: %s", id)
	writeJSON(w, http.StatusOK, leave)
}

// SetStatus 审批：approved / rejected，记录审批人
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := model.LeaveStatus(req.Status)
	if status != model.LeaveStatusApproved && status != model.LeaveStatusRejected {
		writeError(w, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	approvedBy := ""
	if u := auth.GetAuthUser(r.Context()); u != nil {
		approvedBy = u.ID
	}

	if err := h.store.SetLeaveStatus(r.Context(), id, status, approvedBy); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "leave not found")
			return
		}
		log.Printf("[leave] SetLeaveStatus error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update leave status")
		return
	}

	log.Printf("[leave] Leave %s %s by %s", id, status, approvedBy)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "leave " + string(status)})
}

// Delete 删除请假单
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteLeave(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "leave not found")
			return
		}
		log.Printf("[leave] DeleteLeave error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete leave")
		return
	}

	log.Printf("[leave] Leave deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "leave deleted"})
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
