package checkout

import "strings"

// NormalizeCode strips every non-digit rune from a customer-entered code.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCode reports whether the normalized code is exactly length digits.
func ValidCode(code string, length int) bool {
	normalized := NormalizeCode(code)
	return len(normalized) == length
}
