// Package service provides the portal's business logic: the phone
// verification flow, the admin gate, and the registration, announcement,
// and gallery features.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sgshs/eventportal/internal/identity"
	"github.com/sgshs/eventportal/internal/otp"
	"github.com/sgshs/eventportal/internal/session"
)

var (
	// ErrNotRegistered means the login phone is absent from the
	// identity directory.
	ErrNotRegistered = errors.New("number not registered")
	// ErrBadCode means the submitted code does not match the pending
	// one-time code.
	ErrBadCode = errors.New("incorrect code")
	// ErrAlreadyAuthenticated means a login step was attempted on a
	// session that is already authenticated.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	// ErrNoPendingCode means code verification was attempted before a
	// code was issued.
	ErrNoPendingCode = errors.New("no pending code")
)

// VerificationService drives the login state machine over a session:
// anonymous → code issued → authenticated, cycling back on logout.
type VerificationService struct {
	dir      *identity.Directory
	delivery otp.Delivery

	// generate is injectable for tests.
	generate func() (string, error)
}

// NewVerificationService constructs a VerificationService gated by the
// given directory, handing issued codes to delivery.
func NewVerificationService(dir *identity.Directory, delivery otp.Delivery) *VerificationService {
	return &VerificationService{dir: dir, delivery: delivery, generate: otp.GenerateCode}
}

// SubmitPhone handles a login attempt with a phone number. If the
// normalized number is on the allow-list, a fresh 6-digit code is
// issued, handed to the delivery collaborator, and the session moves to
// StageCodeIssued with the number recorded as candidate. Submitting
// again before verification reissues the code. A number not on the
// allow-list returns ErrNotRegistered and leaves the session untouched.
func (s *VerificationService) SubmitPhone(ctx context.Context, sess *session.Session, phone string) error {
	if sess.Stage == session.StageAuthenticated {
		return ErrAlreadyAuthenticated
	}

	normalized := identity.Normalize(phone)
	if !s.dir.Contains(normalized) {
		return ErrNotRegistered
	}

	code, err := s.generate()
	if err != nil {
		return err
	}
	if err := s.delivery.Send(ctx, normalized, code); err != nil {
		// undelivered code must not gate the session
		return fmt.Errorf("deliver code: %w", err)
	}

	sess.Stage = session.StageCodeIssued
	sess.Candidate = normalized
	sess.PendingCode = code
	return nil
}

// SubmitCode checks a submitted code against the pending one. A match
// authenticates the session exactly once, sets its identity to the
// candidate phone, and clears the pending code. A mismatch returns
// ErrBadCode and leaves the pending code in place, so the user may
// retry the same code without limit.
func (s *VerificationService) SubmitCode(sess *session.Session, code string) error {
	switch sess.Stage {
	case session.StageAuthenticated:
		return ErrAlreadyAuthenticated
	case session.StageAnonymous:
		return ErrNoPendingCode
	}

	if code != sess.PendingCode {
		return ErrBadCode
	}

	sess.Stage = session.StageAuthenticated
	sess.Identity = sess.Candidate
	if name, ok := s.dir.Name(sess.Identity); ok {
		sess.DisplayName = name
	}
	sess.Candidate = ""
	sess.PendingCode = ""
	return nil
}

// Logout returns the session to anonymous, clearing identity, pending
// code, the welcome flag, and the admin flag, regardless of prior
// state.
func (s *VerificationService) Logout(sess *session.Session) {
	sess.Reset()
}
