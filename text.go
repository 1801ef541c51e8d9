package gridiron

import "strings"

// Clean collapses every run of whitespace, including non-breaking spaces,
// into a single ASCII space and trims the result.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey lowercases s and removes every character that is not an
// ASCII letter or digit. An empty result means s carries no identity.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
