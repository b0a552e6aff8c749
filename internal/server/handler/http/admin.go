package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sgshs/eventportal/internal/middleware"
	"github.com/sgshs/eventportal/internal/service"
	"github.com/sgshs/eventportal/internal/session"
)

// Gate defines the admin-gate operations required by the HTTP handlers.
type Gate interface {
	// Login sets the session's admin flag on an exact password match.
	Login(sess *session.Session, password string) error
	// Logout clears the admin flag only.
	Logout(sess *session.Session)
}

// AdminHandler handles HTTP requests for the admin gate.
type AdminHandler struct {
	// Gate performs the underlying admin authorization.
	Gate Gate
}

// AdminLoginRequest represents the JSON payload for the admin gate.
type AdminLoginRequest struct {
	// Password is compared verbatim against the configured secret.
	Password string `json:"password"`
}

// Login handles POST /api/admin/login for authenticated sessions.
// There is no attempt limit; a wrong password reports 401 and nothing
// else changes.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Gate.Login(sess, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrBadAdminPassword):
			http.Error(w, "incorrect password", http.StatusUnauthorized)
		case errors.Is(err, service.ErrNotAuthenticated):
			http.Error(w, "login required", http.StatusUnauthorized)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Logout handles POST /api/admin/logout, dropping admin privileges
// while leaving the login session intact.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	h.Gate.Logout(sess)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
