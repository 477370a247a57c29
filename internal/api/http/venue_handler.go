package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/service"
)

// VenueHandler serves the public read side of published venues.
type VenueHandler struct {
	venueSvc service.VenueService
}

func NewVenueHandler(venueSvc service.VenueService) *VenueHandler {
	return &VenueHandler{venueSvc: venueSvc}
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	venues, total, err := h.venueSvc.ListVenues(r.Context(),
		queryInt32(q.Get("page"), 1), queryInt32(q.Get("limit"), 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"venues": venues,
		"total":  total,
	})
}

func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, domain.ValidationError("invalid venue id"))
		return
	}
	venue, err := h.venueSvc.GetVenue(r.Context(), int32(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}
