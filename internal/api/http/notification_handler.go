package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	q := r.URL.Query()
	notifications, total, err := h.noteSvc.GetNotifications(r.Context(), claims.UserID,
		queryInt32(q.Get("page"), 1), queryInt32(q.Get("limit"), 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"total":         total,
	})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	count, err := h.noteSvc.UnreadCount(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, domain.ValidationError("invalid notification id"))
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), claims.UserID, int32(id)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	if err := h.noteSvc.MarkAllRead(r.Context(), claims.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
