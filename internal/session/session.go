// Package session holds transient per-user state for the duration of
// one interactive session. Sessions are purely in-memory and vanish on
// process end.
package session

import "time"

// Stage is the authentication stage of a session.
type Stage string

const (
	// StageAnonymous is the initial stage; no phone has been accepted.
	StageAnonymous Stage = "anonymous"
	// StageCodeIssued means a one-time code has been issued for a
	// candidate phone number and is awaiting verification.
	StageCodeIssued Stage = "code_issued"
	// StageAuthenticated means the one-time code was verified.
	StageAuthenticated Stage = "authenticated"
)

// Session is the per-connection state. Identity is non-empty iff Stage
// is StageAuthenticated; PendingCode is non-empty only while Stage is
// StageCodeIssued. A session is privately owned by one logical caller,
// so fields carry no lock of their own.
type Session struct {
	// Stage is the current authentication stage.
	Stage Stage
	// Identity is the authenticated normalized phone number.
	Identity string
	// DisplayName is the allow-list name for Identity.
	DisplayName string
	// Candidate is the normalized phone awaiting code verification.
	Candidate string
	// PendingCode is the one-time code issued for Candidate.
	PendingCode string
	// Greeted is true once the one-time welcome has been shown.
	Greeted bool
	// IsAdmin marks an authenticated session that has also passed the
	// admin gate.
	IsAdmin bool
	// LastSeen is the time of the most recent lookup, used for idle
	// expiry.
	LastSeen time.Time
}

// Reset returns every field to its anonymous default.
func (s *Session) Reset() {
	s.Stage = StageAnonymous
	s.Identity = ""
	s.DisplayName = ""
	s.Candidate = ""
	s.PendingCode = ""
	s.Greeted = false
	s.IsAdmin = false
}
