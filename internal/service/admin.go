package service

import (
	"crypto/subtle"
	"errors"

	"github.com/sgshs/eventportal/internal/session"
)

var (
	// ErrBadAdminPassword means the submitted admin password does not
	// match the configured secret.
	ErrBadAdminPassword = errors.New("incorrect admin password")
	// ErrNotAuthenticated means the operation requires an
	// authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// AdminGate is the secondary authorization layer unlocking privileged
// writes. It is orthogonal to login: the flag rides on an already
// authenticated session and is cleared independently.
type AdminGate struct {
	secret string
}

// NewAdminGate constructs an AdminGate around the shared secret. The
// secret is configuration, not a hashed credential.
func NewAdminGate(secret string) *AdminGate {
	return &AdminGate{secret: secret}
}

// Login sets the session's admin flag iff password exactly equals the
// configured secret (case-sensitive, no trimming). The comparison is
// constant-time. There is no attempt limit.
func (g *AdminGate) Login(sess *session.Session, password string) error {
	if sess.Stage != session.StageAuthenticated {
		return ErrNotAuthenticated
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.secret)) != 1 {
		return ErrBadAdminPassword
	}
	sess.IsAdmin = true
	return nil
}

// Logout clears the admin flag without touching the login stage.
func (g *AdminGate) Logout(sess *session.Session) {
	sess.IsAdmin = false
}
