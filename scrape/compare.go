package scrape

import "github.com/fwojciec/gridiron"

// Unchanged reports which classifications produced the same document
// content as in prev. A nil prev marks nothing unchanged.
func Unchanged(prev *gridiron.Run, docs []*DocumentResult) map[string]bool {
	unchanged := make(map[string]bool)
	if prev == nil {
		return unchanged
	}

	hashes := make(map[string]string, len(prev.Documents))
	for _, d := range prev.Documents {
		hashes[d.Class] = d.Hash
	}
	for _, d := range docs {
		if h, ok := hashes[d.Source.Class]; ok && h != "" && h == d.Hash {
			unchanged[d.Source.Class] = true
		}
	}
	return unchanged
}
