package gridiron

import (
	"maps"
	"slices"
)

// TeamIndex maps a normalized team key to that team's records.
// Records for a key keep the order in which they were added.
type TeamIndex map[string][]*ScheduleRecord

// Add appends a record under its key. Records without a key are dropped.
func (idx TeamIndex) Add(rec *ScheduleRecord) {
	if rec == nil || rec.Key == "" {
		return
	}
	idx[rec.Key] = append(idx[rec.Key], rec)
}

// Len returns the total number of records across all teams.
func (idx TeamIndex) Len() int {
	var n int
	for _, recs := range idx {
		n += len(recs)
	}
	return n
}

// Keys returns the team keys in lexical order.
func (idx TeamIndex) Keys() []string {
	return slices.Sorted(maps.Keys(idx))
}

// Merge folds indexes into one, in argument order. For a key present in
// several inputs the merged sequence is the concatenation of each input's
// sequence. Nothing is sorted or deduplicated and the inputs are not
// modified.
func Merge(indexes ...TeamIndex) TeamIndex {
	merged := make(TeamIndex)
	for _, idx := range indexes {
		for key, recs := range idx {
			merged[key] = append(merged[key], recs...)
		}
	}
	return merged
}
