package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/sgshs/eventportal/internal/service"
)

// maxUploadBytes caps a single gallery upload.
const maxUploadBytes = 10 << 20

// Gallery defines the image-gallery operations required by the HTTP
// handlers.
type Gallery interface {
	// List returns the stored image filenames in sorted order.
	List() ([]string, error)
	// Save stores an uploaded image and returns its stored filename.
	Save(name string, r io.Reader) (string, error)
}

// GalleryHandler handles HTTP requests for the image gallery.
type GalleryHandler struct {
	// Gallery performs the underlying file operations.
	Gallery Gallery
}

// List handles GET /api/gallery, returning the image URLs to render.
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.Gallery.List()
	if err != nil {
		http.Error(w, "failed to list gallery", http.StatusInternalServerError)
		return
	}

	urls := make([]string, 0, len(names))
	for _, n := range names {
		urls = append(urls, path.Join("/gallery", n))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"images": urls})
}

// Upload handles POST /api/gallery for admin sessions. It expects a
// multipart form with an "image" file field.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	stored, err := h.Gallery.Save(header.Filename, file)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) {
			http.Error(w, "unsupported image type", http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to save image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"filename": stored})
}
