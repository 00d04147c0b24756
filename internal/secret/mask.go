// Package secret provides display-only redaction of credential values.
package secret

// redacted is returned for secrets too short to show any characters of.
const redacted = "********"

// Mask redacts a secret for display. Empty input stays empty; anything
// shorter than 8 characters is fully redacted; longer values keep only
// the first and last 4 characters. The result is never used in any
// comparison or authorization decision.
func Mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) < 8 {
		return redacted
	}
	return s[:4] + "..." + s[len(s)-4:]
}
