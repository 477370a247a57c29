package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// StorageHandler hands out upload URLs and, for the mock backend, serves the
// upload and download endpoints those URLs point at.
type StorageHandler struct {
	store storage.StorageInterface
}

func NewStorageHandler(store storage.StorageInterface) *StorageHandler {
	return &StorageHandler{store: store}
}

type uploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type uploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	PublicID  string `json:"public_id"`
}

// GenerateUploadURL returns a short-lived URL the client PUTs the file to,
// plus the public {url, id} pair to embed in the registration payload.
func (h *StorageHandler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	claims, _ := callerClaims(r.Context())
	var req uploadURLRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		writeError(w, domain.ValidationError("filename is required"))
		return
	}
	if !allowedImageTypes[req.ContentType] {
		writeError(w, domain.ValidationError("unsupported content type %q", req.ContentType))
		return
	}

	key := storage.NewObjectKey(claims.UserID, req.Filename)
	uploadURL, err := h.store.GenerateUploadURL(r.Context(), key, req.ContentType, 15*time.Minute)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadURLResponse{
		UploadURL: uploadURL,
		PublicURL: h.store.PublicURL(key),
		PublicID:  key,
	})
}

// HandleMockUpload accepts the PUT a client makes against a mock upload URL.
func (h *StorageHandler) HandleMockUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}
	if !allowedImageTypes[r.Header.Get("Content-Type")] {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}
	if err := h.store.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleMockDownload serves stored files back, mimicking a public bucket.
func (h *StorageHandler) HandleMockDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}
	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = io.Copy(w, file)
}
