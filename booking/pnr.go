package booking

import "strings"

const pnrLength = 6

// NormalizePNR strips every non-alphanumeric character and upper-cases
// the rest. Length is not checked here; display code normalizes
// whatever was stored, the controllers reject bad lengths on write.
func NormalizePNR(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPNR reports whether the normalized form of raw is a usable
// airline booking reference: exactly 6 alphanumeric characters.
func ValidPNR(raw string) bool {
	return len(NormalizePNR(raw)) == pnrLength
}
