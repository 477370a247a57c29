package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/security"
	"venuebook-backend/internal/service"
	"venuebook-backend/internal/storage"
)

type RouterDeps struct {
	Tokens    security.TokenManager
	AuthSvc   service.AuthService
	RegSvc    service.RegistrationService
	ReviewSvc service.ReviewService
	NoteSvc   service.NotificationService
	VenueSvc  service.VenueService
	Store     storage.StorageInterface
}

// NewRouter builds the full route table. Admin review endpoints sit behind
// the admin role; owner endpoints behind the venue-owner role.
func NewRouter(deps RouterDeps) *mux.Router {
	auth := NewAuthHandler(deps.AuthSvc)
	reg := NewRegistrationHandler(deps.RegSvc)
	admin := NewAdminHandler(deps.ReviewSvc)
	note := NewNotificationHandler(deps.NoteSvc)
	venue := NewVenueHandler(deps.VenueSvc)
	store := NewStorageHandler(deps.Store)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	// Public surface.
	r.HandleFunc("/auth/signup", auth.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", auth.Refresh).Methods(http.MethodPost)
	r.HandleFunc("/venues", venue.List).Methods(http.MethodGet)
	r.HandleFunc("/venues/{id:[0-9]+}", venue.Get).Methods(http.MethodGet)

	// Mock storage endpoints match the URLs GenerateUploadURL hands out.
	r.HandleFunc("/storage/upload", store.HandleMockUpload).Methods(http.MethodPut)
	r.HandleFunc("/storage/files", store.HandleMockDownload).Methods(http.MethodGet)

	authed := r.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(deps.Tokens))
	authed.HandleFunc("/auth/device-token", auth.RegisterDeviceToken).Methods(http.MethodPost)
	authed.HandleFunc("/notifications", note.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/unread-count", note.UnreadCount).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", note.MarkAsRead).Methods(http.MethodPut)
	authed.HandleFunc("/notifications/mark-all-read", note.MarkAllRead).Methods(http.MethodPut)
	authed.HandleFunc("/storage/upload-url", store.GenerateUploadURL).Methods(http.MethodPost)

	owner := authed.NewRoute().Subrouter()
	owner.Use(RequireRole(domain.RoleVenueOwner))
	owner.HandleFunc("/registration/my-registration", reg.GetMyRegistration).Methods(http.MethodGet)
	owner.HandleFunc("/registration", reg.SaveDraft).Methods(http.MethodPost)
	owner.HandleFunc("/registration/resubmit", reg.Resubmit).Methods(http.MethodPost)

	adminRoutes := authed.NewRoute().Subrouter()
	adminRoutes.Use(RequireRole(domain.RoleAdmin))
	adminRoutes.HandleFunc("/registration/admin/all", admin.ListRegistrations).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/registration/admin/{id:[0-9]+}", admin.GetRegistration).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/registration/admin/{id:[0-9]+}/review-document", admin.ReviewDocument).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/registration/admin/{id:[0-9]+}/approve", admin.ApproveAll).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/registration/admin/{id:[0-9]+}/reject", admin.RejectAll).Methods(http.MethodPut)

	return r
}
