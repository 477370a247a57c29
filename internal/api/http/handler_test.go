package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
	"venuebook-backend/internal/security"
)

// stubReviewService lets each test pin the one method it exercises.
type stubReviewService struct {
	approveSection func(ctx context.Context, adminID, registrationID int32, sectionKey string) (*domain.Registration, error)
	rejectSection  func(ctx context.Context, adminID, registrationID int32, sectionKey, reason string) (*domain.Registration, error)
}

func (s *stubReviewService) ApproveSection(ctx context.Context, adminID, registrationID int32, sectionKey string) (*domain.Registration, error) {
	return s.approveSection(ctx, adminID, registrationID, sectionKey)
}
func (s *stubReviewService) RejectSection(ctx context.Context, adminID, registrationID int32, sectionKey, reason string) (*domain.Registration, error) {
	return s.rejectSection(ctx, adminID, registrationID, sectionKey, reason)
}
func (s *stubReviewService) ApproveAll(ctx context.Context, adminID, registrationID int32) (*domain.Registration, error) {
	panic("not used")
}
func (s *stubReviewService) RejectAll(ctx context.Context, adminID, registrationID int32, reason string) (*domain.Registration, error) {
	panic("not used")
}
func (s *stubReviewService) GetRegistration(ctx context.Context, registrationID int32) (*domain.Registration, error) {
	panic("not used")
}
func (s *stubReviewService) ListRegistrations(ctx context.Context, filter repository.RegistrationFilter) ([]domain.Registration, int32, map[domain.RegistrationStatus]int32, error) {
	panic("not used")
}

func adminRequest(t *testing.T, method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	claims := &security.UserClaims{UserID: 7, Role: domain.RoleAdmin, Type: security.TokenTypeAccess}
	return req.WithContext(withClaims(req.Context(), claims))
}

func TestAdminHandler_ReviewDocument(t *testing.T) {
	t.Run("approve routes to ApproveSection with the caller id", func(t *testing.T) {
		svc := &stubReviewService{
			approveSection: func(ctx context.Context, adminID, registrationID int32, sectionKey string) (*domain.Registration, error) {
				assert.Equal(t, int32(7), adminID)
				assert.Equal(t, int32(1), registrationID)
				assert.Equal(t, "phone", sectionKey)
				reg := domain.NewRegistration(2)
				reg.ID = registrationID
				return reg, nil
			},
		}
		h := NewAdminHandler(svc)

		req := adminRequest(t, http.MethodPut, "/registration/admin/1/review-document",
			reviewDocumentRequest{DocumentField: "phone", Status: "APPROVED"})
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		h.ReviewDocument(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejection without reason maps to 400", func(t *testing.T) {
		svc := &stubReviewService{
			rejectSection: func(ctx context.Context, adminID, registrationID int32, sectionKey, reason string) (*domain.Registration, error) {
				return nil, domain.ValidationError("rejection reason is required")
			},
		}
		h := NewAdminHandler(svc)

		req := adminRequest(t, http.MethodPut, "/registration/admin/1/review-document",
			reviewDocumentRequest{DocumentField: "phone", Status: "REJECTED"})
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		h.ReviewDocument(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body errorBody
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "VALIDATION", body.Error.Kind)
	})

	t.Run("unknown status is rejected before the service runs", func(t *testing.T) {
		h := NewAdminHandler(&stubReviewService{})

		req := adminRequest(t, http.MethodPut, "/registration/admin/1/review-document",
			reviewDocumentRequest{DocumentField: "phone", Status: "MAYBE"})
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		h.ReviewDocument(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ValidationError("bad input"), http.StatusBadRequest},
		{domain.AuthenticationError("who are you"), http.StatusUnauthorized},
		{domain.AuthorizationError("nope"), http.StatusForbidden},
		{domain.NotFoundError("missing"), http.StatusNotFound},
		{domain.InvalidStateError("wrong state"), http.StatusConflict},
		{domain.ConflictError("stale version"), http.StatusConflict},
		{domain.ForbiddenFieldError("not yours"), http.StatusUnprocessableEntity},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
	}
}

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", 60, 1440)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := callerClaims(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int32(7), claims.UserID)
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthMiddleware(tokens)(next)

	t.Run("valid access token passes", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(7, "admin@test.com", domain.RoleAdmin)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token cannot hit API endpoints", func(t *testing.T) {
		token, err := tokens.GenerateRefreshToken(7, "admin@test.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRole(domain.RoleAdmin)(next)

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/registration/admin/all", nil)
		claims := &security.UserClaims{UserID: 7, Role: domain.RoleAdmin, Type: security.TokenTypeAccess}
		req = req.WithContext(withClaims(req.Context(), claims))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("owner is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/registration/admin/all", nil)
		claims := &security.UserClaims{UserID: 2, Role: domain.RoleVenueOwner, Type: security.TokenTypeAccess}
		req = req.WithContext(withClaims(req.Context(), claims))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
