package http

import (
	"encoding/json"
	"net/http"

	"github.com/sgshs/eventportal/internal/middleware"
	"github.com/sgshs/eventportal/internal/models"
)

// Registrations defines the registration operations required by the
// HTTP handlers.
type Registrations interface {
	// Submit stamps and appends one entry.
	Submit(reg models.Registration) error
	// List returns every entry in submission order.
	List() []models.Registration
	// Export returns the store as CSV, header included.
	Export() ([]byte, error)
}

// RegistrationHandler handles HTTP requests for participation entries.
type RegistrationHandler struct {
	// Registrations performs the underlying store operations.
	Registrations Registrations
}

// Create handles POST /api/registrations for authenticated sessions.
// Timestamp and status are set server-side; an empty contact defaults
// to the logged-in phone number.
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if reg.Contact == "" {
		if sess := middleware.SessionFromContext(r.Context()); sess != nil {
			reg.Contact = sess.Identity
		}
	}

	if err := h.Registrations.Submit(reg); err != nil {
		http.Error(w, "failed to save registration", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "registered"})
}

// List handles GET /api/registrations.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"registrations": h.Registrations.List(),
	})
}

// Export handles GET /api/registrations/export, serving the full store
// as a CSV download.
func (h *RegistrationHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Registrations.Export()
	if err != nil {
		http.Error(w, "failed to export registrations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.csv"`)
	_, _ = w.Write(data)
}
