package http

import (
	"encoding/json"
	"net/http"

	"github.com/sgshs/eventportal/internal/models"
)

// Announcements defines the notice-board operations required by the
// HTTP handlers.
type Announcements interface {
	// Post stamps and appends one notice.
	Post(title, message, postedBy string) error
	// List returns every notice in posting order.
	List() []models.Announcement
	// Latest returns the newest notice, if any.
	Latest() (models.Announcement, bool)
}

// AnnouncementHandler handles HTTP requests for the notice board.
type AnnouncementHandler struct {
	// Announcements performs the underlying store operations.
	Announcements Announcements
}

// PostRequest represents the JSON payload for posting a notice.
type PostRequest struct {
	// Title is the notice headline.
	Title string `json:"title"`
	// Message is the notice body.
	Message string `json:"message"`
	// PostedBy names the author; empty defaults to "Admin".
	PostedBy string `json:"posted_by"`
}

// List handles GET /api/announcements.
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"announcements": h.Announcements.List(),
	})
}

// Post handles POST /api/announcements for admin sessions.
func (h *AnnouncementHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Announcements.Post(req.Title, req.Message, req.PostedBy); err != nil {
		http.Error(w, "failed to save announcement", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "posted"})
}
