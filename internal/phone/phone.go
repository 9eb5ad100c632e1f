// Package phone normalizes US phone numbers into the canonical
// "+1 DDD-DDD-DDDD" form stored on reservations.
package phone

import "strings"

// Format strips every non-digit from raw and re-renders it progressively
// as "+1 DDD-DDD-DDDD".  An 11-digit input with a leading 1 is treated as
// already carrying the country code and the 1 is dropped; anything beyond
// ten significant digits is ignored.  Partial input yields a sensible
// prefix ("+1 720", "+1 720-123"), which lets a UI format while typing.
func Format(raw string) string {
	digits := digitsOf(raw)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) > 10 {
		digits = digits[:10]
	}

	var b strings.Builder
	b.WriteString("+1 ")
	if len(digits) > 0 {
		b.WriteString(digits[:min(3, len(digits))])
	}
	if len(digits) >= 4 {
		b.WriteByte('-')
		b.WriteString(digits[3:min(6, len(digits))])
	}
	if len(digits) >= 7 {
		b.WriteByte('-')
		b.WriteString(digits[6:])
	}
	return b.String()
}

// Valid reports whether formatted contains a complete number: exactly 11
// digits counting the leading country code.
func Valid(formatted string) bool {
	return len(digitsOf(formatted)) == 11
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
