package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sgshs/eventportal/internal/session"
)

// dummyHandler records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func TestRequireSession_MissingToken(t *testing.T) {
	m := session.NewManager(time.Hour)
	dummy := &dummyHandler{}
	h := RequireSession(m)(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/me", nil)
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestRequireSession_UnknownToken(t *testing.T) {
	m := session.NewManager(time.Hour)
	dummy := &dummyHandler{}
	h := RequireSession(m)(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler with an unknown token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestRequireSession_ValidToken(t *testing.T) {
	m := session.NewManager(time.Hour)
	token, sess := m.Create()

	dummy := &dummyHandler{}
	h := RequireSession(m)(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Fatal("expected next handler to be called with a valid token")
	}
	if got := SessionFromContext(dummy.ctx); got != sess {
		t.Error("expected the session to be stored in the request context")
	}
}

func TestRequireAuthenticated(t *testing.T) {
	tests := []struct {
		name     string
		stage    session.Stage
		wantCode int
	}{
		{name: "anonymous", stage: session.StageAnonymous, wantCode: http.StatusUnauthorized},
		{name: "code issued", stage: session.StageCodeIssued, wantCode: http.StatusUnauthorized},
		{name: "authenticated", stage: session.StageAuthenticated, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dummy := &dummyHandler{}
			h := RequireAuthenticated(dummy)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/me", nil)
			ctx := ContextWithSession(req.Context(), &session.Session{Stage: tt.stage})
			h.ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d; want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	dummy := &dummyHandler{}
	h := RequireAdmin(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/announcements", nil)
	ctx := ContextWithSession(req.Context(), &session.Session{Stage: session.StageAuthenticated})
	h.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d; want 403 for non-admin", rec.Code)
	}
	if dummy.called {
		t.Error("did not expect next handler for non-admin session")
	}

	rec = httptest.NewRecorder()
	ctx = ContextWithSession(req.Context(), &session.Session{Stage: session.StageAuthenticated, IsAdmin: true})
	h.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want 200 for admin", rec.Code)
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer", header: "Bearer abc123", want: "abc123"},
		{name: "missing", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := TokenFromRequest(req); got != tt.want {
				t.Errorf("TokenFromRequest = %q; want %q", got, tt.want)
			}
		})
	}
}
