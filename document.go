package gridiron

// RawDocument is the HTML body of one classification's schedule page.
type RawDocument struct {
	// Class is the classification code, e.g. "A" or "C1".
	Class string

	// URL is where the body was obtained. Informational only.
	URL string

	// Body is the complete HTML document.
	Body string
}

// Validate returns an error if the document contains invalid fields.
func (d *RawDocument) Validate() error {
	if d.Class == "" {
		return Errorf(EINVALID, "document classification required")
	}
	return nil
}

// Parser extracts per-team schedule records from a classification document.
type Parser interface {
	// Parse returns the records found in doc keyed by normalized team key.
	// Tables and rows that do not fit the expected shape are skipped; a
	// document with no usable tables yields an empty index and no error.
	Parse(doc *RawDocument) (TeamIndex, error)
}
