package goquery

import (
	"slices"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gridiron"
)

// HeaderResult is the outcome of header detection for one table.
type HeaderResult struct {
	// Found is false when no row of the table declares both required columns.
	Found bool

	// Row is the detected header row.
	Row *goquery.Selection

	// Columns holds the cleaned header cell texts in order.
	Columns gridiron.HeaderRow
}

// FindHeader returns the first row of table whose cleaned cells include
// both "Date" and "Opponent". Matching is exact and case-sensitive.
func FindHeader(table *goquery.Selection) HeaderResult {
	for _, tr := range tableRows(table).EachIter() {
		cols := cellTexts(tr.ChildrenFiltered("th, td"))
		if slices.Contains(cols, gridiron.ColumnDate) && slices.Contains(cols, gridiron.ColumnOpponent) {
			return HeaderResult{
				Found:   true,
				Row:     tr,
				Columns: cols,
			}
		}
	}
	return HeaderResult{}
}

// cellTexts returns the cleaned text of each selected cell.
func cellTexts(cells *goquery.Selection) []string {
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, gridiron.Clean(cell.Text()))
	})
	return texts
}
