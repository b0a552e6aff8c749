// Package identity provides the allow-list of phone numbers permitted
// to log in, with pluggable CSV and PostgreSQL backends.
package identity

import "strings"

// Normalize canonicalizes a raw phone number for allow-list comparison.
// It removes internal spaces, every occurrence of the "+91" country
// prefix, and hyphens, trims surrounding whitespace, and keeps only the
// last 10 characters. The same normalization is applied to directory
// entries and to user input, so membership is an exact string match.
// Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, " ", "")
	s = strings.ReplaceAll(s, "+91", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}
