package gridiron

import "regexp"

// trailingParenRe matches a parenthesized segment at the end of a label,
// such as the win-loss record in "Wahoo (3-1)".
var trailingParenRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// TeamIdentity identifies the team a schedule table belongs to.
type TeamIdentity struct {
	// Name is the caption with any trailing parenthetical removed.
	Name string

	// Key is the normalized form of Name used to merge records across
	// classification documents.
	Key string

	// Caption is the cleaned caption text as it appeared in the document.
	Caption string
}

// IsZero reports whether the identity cannot be attributed to a team.
func (id TeamIdentity) IsZero() bool {
	return id.Key == ""
}

// StripTrailingParenthetical removes one trailing "(...)" segment and the
// whitespace around it. Nested parentheses are left untouched.
func StripTrailingParenthetical(s string) string {
	return trailingParenRe.ReplaceAllString(s, "")
}

// ResolveTeam derives a team identity from raw caption text.
// The returned identity is zero when the caption has no usable name.
func ResolveTeam(caption string) TeamIdentity {
	cleaned := Clean(caption)
	name := StripTrailingParenthetical(cleaned)
	key := NormalizeKey(name)
	if name == "" || key == "" {
		return TeamIdentity{Caption: cleaned}
	}
	return TeamIdentity{
		Name:    name,
		Key:     key,
		Caption: cleaned,
	}
}
