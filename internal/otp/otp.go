// Package otp generates one-time verification codes and defines the
// delivery collaborator that carries them to the user out of band.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"
)

// codeSpan covers the 6-digit range 100000..999999 inclusive.
const (
	codeMin  = 100000
	codeSpan = 900000
)

// GenerateCode returns a uniformly random 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Delivery carries an issued code to the phone's owner. The code must
// never travel back through the API response; a production deployment
// plugs an SMS or email gateway in here.
type Delivery interface {
	Send(ctx context.Context, phone, code string) error
}

// LogDelivery writes issued codes to the service log instead of sending
// them. This is the test-mode delivery for local and demo deployments.
type LogDelivery struct {
	// Log receives the issued codes.
	Log *zap.Logger
}

// Send logs the code at WARN so test-mode codes stand out; the phone
// number is masked down to its last four digits.
func (d *LogDelivery) Send(_ context.Context, phone, code string) error {
	d.Log.Warn("otp issued (test mode, not delivered)",
		zap.String("phone", maskPhone(phone)),
		zap.String("code", code),
	)
	return nil
}

// maskPhone hides all but the last four digits.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
