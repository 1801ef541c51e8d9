// Package goquery implements schedule table extraction on top of goquery.
//
// Extraction runs in stages. Tables and FindCandidates locate captioned
// tables, FindHeader detects the header row, and ExtractRows walks the
// rows that follow it. Each stage reports a skip reason instead of failing,
// so one malformed table never affects its siblings.
package goquery

import (
	"iter"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gridiron"
)

// TableCandidate is a table element together with its caption text.
type TableCandidate struct {
	// Index is the position of the table among all tables in the document.
	Index int

	// Table is the <table> selection.
	Table *goquery.Selection

	// Caption is the cleaned text of the table's own <caption>, if any.
	Caption string
}

// Tables yields every table in doc in document order. Caption is empty
// when the table has no caption.
func Tables(doc *goquery.Document) iter.Seq[TableCandidate] {
	return func(yield func(TableCandidate) bool) {
		for i, table := range doc.Find("table").EachIter() {
			c := TableCandidate{
				Index:   i,
				Table:   table,
				Caption: gridiron.Clean(table.ChildrenFiltered("caption").First().Text()),
			}
			if !yield(c) {
				return
			}
		}
	}
}

// FindCandidates yields the tables of doc that carry a non-empty caption.
// The sequence may be ranged over more than once.
func FindCandidates(doc *goquery.Document) iter.Seq[TableCandidate] {
	return func(yield func(TableCandidate) bool) {
		for c := range Tables(doc) {
			if c.Caption == "" {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// tableRows returns the rows that belong to table itself, excluding rows of
// nested tables.
func tableRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
}
