// Package ticket 工单领域 - 内部支持工单
package ticket

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

// Handler 工单领域 HTTP 处理器
type Handler struct {
	store storage.TicketStore
}

// NewHandler 创建工单处理器
func NewHandler(store storage.TicketStore) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册工单相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/tickets", h.Create)
	mux.HandleFunc("GET /api/v1/tickets", h.List)
	mux.HandleFunc("GET /api/v1/tickets/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/tickets/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/tickets/{id}", h.Delete)
}

// Create 创建工单
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Category    string `json:"category"`
		Subject     string `json:"subject"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		CompanyID   string `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Subject == "" {
		writeError(w, http.StatusBadRequest, "title and subject are required")
		return
	}
	category := model.TicketCategory(req.Category)
	if req.Category == "" {
		category = model.TicketCategoryOther
	}
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid category %q", req.Category))
		return
	}
	priority := model.TicketPriority(req.Priority)
	if req.Priority == "" {
		priority = model.TicketPriorityMedium
	}

	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = req.CompanyID
	}
	createdBy := ""
	if u := auth.GetAuthUser(r.Context()); u != nil {
		createdBy = u.ID
	}

	now := time.Now()
	ticket := &model.Ticket{
		ID:          generateID("tkt"),
		CompanyID:   companyID,
		Title:       req.Title,
		Category:    category,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    priority,
		Status:      model.TicketStatusOpen,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateTicket(r.Context(), ticket); err != nil {
		log.Printf("[ticket] CreateTicket error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create ticket")
		return
	}

	log.Printf("[ticket] Ticket created: %s (%s/%s)", ticket.ID, ticket.Category, ticket.Priority)
	writeJSON(w, http.StatusCreated, ticket)
}

// List 工单列表，支持按状态与优先级过滤
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		companyID = r.URL.Query().Get("company_id")
	}

	filter := storage.TicketFilter{
		CompanyID: companyID,
		Status:    r.URL.Query().Get("status"),
		Priority:  r.URL.Query().Get("priority"),
	}

	tickets, err := h.store.ListTickets(r.Context(), filter)
	if err != nil {
		log.Printf("[ticket] ListTickets error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

// Get 工单详情
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ticket, err := h.store.GetTicket(r.Context(), id)
	if err != nil {
		log.Printf("[ticket] GetTicket error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get ticket")
		return
	}
	if ticket == nil {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}

// Update 更新工单
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ticket, err := h.store.GetTicket(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get ticket")
		return
	}
	if ticket == nil {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}

	var req struct {
		Title       *string `json:"title,omitempty"`
		Category    *string `json:"category,omitempty"`
		Subject     *string `json:"subject,omitempty"`
		Description *string `json:"description,omitempty"`
		Priority    *string `json:"priority,omitempty"`
		Status      *string `json:"status,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title != nil {
		ticket.Title = *req.Title
	}
	if req.Category != nil {
		category := model.TicketCategory(*req.Category)
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid category %q", *req.Category))
			return
		}
		ticket.Category = category
	}
	if req.Subject != nil {
		ticket.Subject = *req.Subject
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Priority != nil {
		ticket.Priority = model.TicketPriority(*req.Priority)
	}
	if req.Status != nil {
		ticket.Status = model.TicketStatus(*req.Status)
	}
	ticket.UpdatedAt = time.Now()

	if err := h.store.UpdateTicket(r.Context(), ticket); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ticket not found")
			return
		}
		log.Printf("[ticket] UpdateTicket error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update ticket")
		return
	}

	log.Printf("[ticket] Ticket updated: %s", id)
	writeJSON(w, http.StatusOK, ticket)
}

// Delete 删除工单
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.DeleteTicket(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ticket not found")
			return
		}
		log.Printf("[ticket] DeleteTicket error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete ticket")
		return
	}

	log.Printf("[ticket] Ticket deleted: %s", id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "ticket deleted"})
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
