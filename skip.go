package gridiron

// SkipReason explains why a table or row contributed no records.
// Skips are expected outcomes of heuristic extraction, not errors.
type SkipReason string

// Table-level skip reasons.
const (
	SkipNone      SkipReason = ""
	SkipNoCaption SkipReason = "no_caption"
	SkipNoTeam    SkipReason = "no_team"
	SkipNoHeader  SkipReason = "no_header"

	// SkipDetachedRows marks a table whose header row has no sibling rows
	// while other rows of the table sit in a separate row group, such as
	// a header in <thead> with data in <tbody>.
	SkipDetachedRows SkipReason = "detached_rows"
)

// Row-level skip reasons.
const (
	SkipSeparator      SkipReason = "separator"
	SkipTerminator     SkipReason = "terminator"
	SkipNoCells        SkipReason = "no_cells"
	SkipRepeatedHeader SkipReason = "repeated_header"
	SkipNoFields       SkipReason = "no_fields"
)
