package gridiron

// Converter converts HTML fragments to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a single schedule
	// table, into Markdown.
	Convert(html string) (string, error)
}
