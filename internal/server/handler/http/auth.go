// Package http provides HTTP handlers for the event portal: phone
// login, registrations, announcements, the gallery, and the admin gate.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sgshs/eventportal/internal/middleware"
	"github.com/sgshs/eventportal/internal/service"
	"github.com/sgshs/eventportal/internal/session"
)

// Verifier defines the login state-machine operations required by the
// HTTP handlers.
type Verifier interface {
	// SubmitPhone issues a one-time code if phone is on the allow-list.
	SubmitPhone(ctx context.Context, sess *session.Session, phone string) error
	// SubmitCode checks a submitted code against the pending one.
	SubmitCode(sess *session.Session, code string) error
	// Logout returns the session to anonymous.
	Logout(sess *session.Session)
}

// AuthHandler handles HTTP requests for phone login and logout.
type AuthHandler struct {
	// Sessions owns the live sessions.
	Sessions *session.Manager
	// Verifier performs the underlying login operations.
	Verifier Verifier
}

// PhoneRequest represents the JSON payload for requesting a code.
type PhoneRequest struct {
	// Phone is the mobile number claiming to log in.
	Phone string `json:"phone"`
}

// VerifyRequest represents the JSON payload for code verification.
type VerifyRequest struct {
	// Code is the one-time code received out of band.
	Code string `json:"code"`
}

// RequestCode handles POST /api/auth/phone. It expects a JSON body with
// a non-empty "phone" field. A valid bearer token reuses its session;
// otherwise a fresh session is created and its token returned. On
// success a one-time code is issued to the delivery channel; the code
// itself is never part of the response.
func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req PhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	token := middleware.TokenFromRequest(r)
	sess, ok := h.Sessions.Get(token)
	if !ok {
		token, sess = h.Sessions.Create()
	}

	if err := h.Verifier.SubmitPhone(r.Context(), sess, req.Phone); err != nil {
		switch {
		case errors.Is(err, service.ErrNotRegistered):
			http.Error(w, "number not registered", http.StatusForbidden)
		case errors.Is(err, service.ErrAlreadyAuthenticated):
			http.Error(w, "already logged in", http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"token":  token,
		"status": "code_sent",
	})
}

// Verify handles POST /api/auth/verify. It expects a bearer token with
// a pending code and a JSON body with the submitted code. A mismatch
// leaves the pending code in place and the user may retry.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Verifier.SubmitCode(sess, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrBadCode):
			http.Error(w, "incorrect code", http.StatusUnauthorized)
		case errors.Is(err, service.ErrNoPendingCode):
			http.Error(w, "request a code first", http.StatusConflict)
		case errors.Is(err, service.ErrAlreadyAuthenticated):
			http.Error(w, "already logged in", http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"user":   sess.Identity,
		"name":   sess.DisplayName,
	})
}

// Me handles GET /api/me for authenticated sessions. The first call
// after login reports greeted=false and flips the flag, so the client
// shows the welcome splash exactly once.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	greeted := sess.Greeted
	sess.Greeted = true

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"phone":   sess.Identity,
		"name":    sess.DisplayName,
		"greeted": greeted,
		"admin":   sess.IsAdmin,
	})
}

// Logout handles POST /api/auth/logout, returning the session to
// anonymous and clearing all of its flags.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	h.Verifier.Logout(sess)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "logged_out"})
}
