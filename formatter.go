package gridiron

import "strings"

// FormatRecords formats records for terminal display, one line per record.
// Whitelisted columns appear in Columns order; empty columns are omitted.
func FormatRecords(recs []*ScheduleRecord) string {
	if len(recs) == 0 {
		return ""
	}

	lines := make([]string, 0, len(recs))
	for _, rec := range recs {
		parts := []string{"[" + rec.Class + "]"}
		for _, col := range Columns {
			if v := rec.Get(col); v != "" {
				parts = append(parts, col+": "+v)
			}
		}
		lines = append(lines, strings.Join(parts, "  "))
	}

	return strings.Join(lines, "\n")
}
