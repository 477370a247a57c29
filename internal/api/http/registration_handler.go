package http

import (
	"net/http"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/service"
)

// RegistrationHandler serves the venue owner's side of the workflow.
type RegistrationHandler struct {
	regSvc service.RegistrationService
}

func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

func (h *RegistrationHandler) GetMyRegistration(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	reg, err := h.regSvc.GetMyRegistration(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *RegistrationHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	var updates domain.SectionUpdates
	if !decodeBody(w, r, &updates) {
		return
	}
	reg, err := h.regSvc.SaveDraft(r.Context(), claims.UserID, &updates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *RegistrationHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	var updates domain.SectionUpdates
	if !decodeBody(w, r, &updates) {
		return
	}
	reg, err := h.regSvc.ResubmitRejectedSections(r.Context(), claims.UserID, &updates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}
