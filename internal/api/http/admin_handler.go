package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
	"venuebook-backend/internal/service"
)

// AdminHandler serves the administrator review surface.
type AdminHandler struct {
	reviewSvc service.ReviewService
}

func NewAdminHandler(reviewSvc service.ReviewService) *AdminHandler {
	return &AdminHandler{reviewSvc: reviewSvc}
}

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, domain.ValidationError("invalid registration id")
	}
	return int32(id), nil
}

type reviewDocumentRequest struct {
	DocumentField   string `json:"documentField"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

// ReviewDocument approves or rejects one section of a registration.
func (h *AdminHandler) ReviewDocument(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req reviewDocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var reg *domain.Registration
	switch req.Status {
	case string(domain.SectionApproved):
		reg, err = h.reviewSvc.ApproveSection(r.Context(), claims.UserID, id, req.DocumentField)
	case string(domain.SectionRejected):
		reg, err = h.reviewSvc.RejectSection(r.Context(), claims.UserID, id, req.DocumentField, req.RejectionReason)
	default:
		err = domain.ValidationError("status must be APPROVED or REJECTED")
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *AdminHandler) ApproveAll(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	reg, err := h.reviewSvc.ApproveAll(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *AdminHandler) RejectAll(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	reg, err := h.reviewSvc.RejectAll(r.Context(), claims.UserID, id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *AdminHandler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	reg, err := h.reviewSvc.GetRegistration(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

type listRegistrationsResponse struct {
	Registrations []domain.Registration               `json:"registrations"`
	Total         int32                               `json:"total"`
	Page          int32                               `json:"page"`
	PageSize      int32                               `json:"page_size"`
	Counts        map[domain.RegistrationStatus]int32 `json:"counts"`
}

// ListRegistrations serves the admin queue with status filtering, name
// search, pagination and per-status counts for the dashboard tabs.
func (h *AdminHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.RegistrationFilter{
		Status:   domain.RegistrationStatus(q.Get("status")),
		Search:   q.Get("search"),
		Page:     queryInt32(q.Get("page"), 1),
		PageSize: queryInt32(q.Get("limit"), 20),
	}

	regs, total, counts, err := h.reviewSvc.ListRegistrations(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listRegistrationsResponse{
		Registrations: regs,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
		Counts:        counts,
	})
}

func queryInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
